package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadup-app/backend/internal/dto"
	"github.com/threadup-app/backend/internal/models"
)

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/users", "", dto.RegisterUserRequest{
		UID:   "uid-new",
		Email: "new@example.com",
		Name:  "Newcomer",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/users", "", dto.RegisterUserRequest{
		UID:   "uid-new",
		Email: "new@example.com",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode, "repeat sign-in is not an error")
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "User already exists", body["message"])

	resp = env.request(t, http.MethodPost, "/users", "", dto.RegisterUserRequest{Email: "no-uid@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetUserByUID(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-known", "known@example.com")

	resp := env.request(t, http.MethodGet, "/user/uid-known", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var user models.User
	decodeBody(t, resp, &user)
	assert.Equal(t, "known@example.com", user.Email)

	resp = env.request(t, http.MethodGet, "/user/uid-ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListAllUsersIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-1", "one@example.com")
	env.seedUser(t, "uid-2", "two@example.com")

	resp := env.request(t, http.MethodGet, "/all-user", "user-token", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/all-user", "admin-token", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Count int           `json:"count"`
		Users []models.User `json:"users"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, 2, body.Count)
}

func TestMakeAdminEndpoint(t *testing.T) {
	env := newTestEnv(t)
	target := env.seedUser(t, "uid-target", "target@example.com")

	resp := env.request(t, http.MethodPatch, "/make-admin/"+target.ID.String(), "user-token", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodPatch, "/make-admin/"+target.ID.String(), "admin-token", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", target.ID).Error)
	assert.True(t, stored.IsAdmin)

	resp = env.request(t, http.MethodPatch, "/make-admin/"+target.ID.String(), "admin-token", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "User is already an admin", body["message"])

	resp = env.request(t, http.MethodPatch, "/make-admin/"+uuid.NewString(), "admin-token", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateUserRequiresVerifiedPayment(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "uid-user", "user@example.com")

	resp := env.request(t, http.MethodPost, "/update-user", "user-token",
		dto.UpdateUserRequest{Email: "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// No settled payment: the client's claim of success is not enough.
	resp = env.request(t, http.MethodPost, "/update-user", "user-token",
		dto.UpdateUserRequest{Email: user.Email})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	require.NoError(t, env.db.Create(&models.Payment{
		IntentID:    "pi_settled",
		Email:       user.Email,
		AmountCents: 999,
		Status:      models.PaymentStatusSucceeded,
	}).Error)

	resp = env.request(t, http.MethodPost, "/update-user", "user-token",
		dto.UpdateUserRequest{Email: user.Email})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, "member", stored.Role)
	assert.Equal(t, "gold", stored.Badge)
	assert.True(t, stored.IsMember)

	resp = env.request(t, http.MethodPost, "/update-user", "user-token",
		dto.UpdateUserRequest{Email: user.Email})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "User already has these values", body["message"])
}

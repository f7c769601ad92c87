package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/my-posts?email=a@example.com", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "unauthorized access", body["message"])
}

func TestProtectedRoutesRejectMalformedHeader(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/my-posts?email=a@example.com", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRejectBadToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/my-posts?email=a@example.com", "not-a-real-token", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "forbidden access", body["message"])
}

func TestProtectedRoutesAcceptValidToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/my-posts?email=user@example.com", "user-token", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/reported-comments", "user-token", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/reported-comments", "admin-token", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRoleReadFromDatabase(t *testing.T) {
	env := newTestEnv(t)
	target := env.seedUser(t, "uid-db-admin", "dbadmin@example.com")

	resp := env.request(t, http.MethodGet, "/reported-comments", "db-admin-token", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "not yet promoted")

	resp = env.request(t, http.MethodPatch, "/make-admin/"+target.ID.String(), "admin-token", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The promotion is in the users table only, so passing the gate proves
	// the role is re-checked server side.
	resp = env.request(t, http.MethodGet, "/reported-comments", "db-admin-token", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminTokenHeaderOverride(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/reported-comments", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	req.Header.Set("X-Admin-Token", "ops-override-token")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLivenessEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]interface{}
	decodeBody(t, resp, &health)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "ok", health["db"])

	resp = env.request(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

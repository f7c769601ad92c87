package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"github.com/threadup-app/backend/internal/config"
	"github.com/threadup-app/backend/internal/database"
	"github.com/threadup-app/backend/internal/handlers"
	"github.com/threadup-app/backend/internal/models"
	"github.com/threadup-app/backend/internal/routes"
	"github.com/threadup-app/backend/internal/services"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubVerifier resolves bearer tokens from a fixed map, standing in for the
// identity provider's JWKS verification.
type stubVerifier struct {
	tokens map[string]*services.IdentityClaims
}

func (v *stubVerifier) Verify(idToken string) (*services.IdentityClaims, error) {
	if claims, ok := v.tokens[idToken]; ok {
		return claims, nil
	}
	return nil, errors.New("token verification failed")
}

type stubIntents struct {
	pi  *stripe.PaymentIntent
	err error
}

func (s *stubIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return s.pi, s.err
}

type testEnv struct {
	app     *fiber.App
	db      *gorm.DB
	intents *stubIntents
}

const webhookSecret = "whsec_test_secret"

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		AdminEmails: "admin@example.com",
		AdminToken:  "ops-override-token",
	}

	verifier := &stubVerifier{tokens: map[string]*services.IdentityClaims{
		"user-token": {
			UID:   "uid-user",
			Email: "user@example.com",
			Name:  "Regular User",
		},
		"admin-token": {
			UID:   "uid-admin",
			Email: "admin@example.com",
			Name:  "Site Admin",
		},
		// Not in the config admin lists; admin status, if any, lives in
		// the users table.
		"db-admin-token": {
			UID:   "uid-db-admin",
			Email: "dbadmin@example.com",
			Name:  "Promoted Admin",
		},
	}}

	intents := &stubIntents{pi: &stripe.PaymentIntent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
	}}

	userService := services.NewUserService(db)
	postService := services.NewPostService(db)

	app := fiber.New()
	routes.Setup(
		app,
		cfg,
		db,
		verifier,
		handlers.NewPostHandler(postService),
		handlers.NewUserHandler(userService),
		handlers.NewModerationHandler(services.NewModerationService(db)),
		handlers.NewPaymentHandler(services.NewPaymentService(db, intents, userService), webhookSecret),
		handlers.NewTagHandler(services.NewTagService(db)),
		handlers.NewAnnouncementHandler(services.NewAnnouncementService(db)),
		handlers.NewHealthHandler(db),
	)

	return &testEnv{app: app, db: db, intents: intents}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (e *testEnv) seedPost(t *testing.T, title, authorUID, authorEmail string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       title,
		Description: "seed description",
		AuthorName:  "Seed Author",
		AuthorEmail: authorEmail,
		AuthorUID:   authorUID,
		Visible:     true,
	}
	require.NoError(t, e.db.Create(post).Error)
	return post
}

func (e *testEnv) seedComment(t *testing.T, post *models.Post, content string) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		PostID:     post.ID,
		AuthorName: "Commenter",
		Content:    content,
	}
	require.NoError(t, e.db.Create(comment).Error)
	return comment
}

func (e *testEnv) seedUser(t *testing.T, uid, email string) *models.User {
	t.Helper()
	user := &models.User{
		UID:   uid,
		Email: email,
		Name:  "Seed User",
		Role:  "user",
		Badge: "bronze",
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

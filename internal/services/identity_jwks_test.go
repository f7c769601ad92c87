package services

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProjectID = "threadup-test"

type jwksFixture struct {
	key     *rsa.PrivateKey
	kid     string
	server  *httptest.Server
	fetches int
}

func newJWKSFixture(t *testing.T) *jwksFixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	f := &jwksFixture{key: key, kid: "test-key-1"}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.fetches++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": f.kid,
				"use": "sig",
				"alg": "RS256",
				"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
			}},
		})
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *jwksFixture) sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = f.kid
	signed, err := token.SignedString(f.key)
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":     "https://securetoken.google.com/" + testProjectID,
		"aud":     testProjectID,
		"sub":     "uid-123",
		"email":   "user@example.com",
		"name":    "Test User",
		"picture": "https://img.example/u.png",
		"iat":     now.Unix(),
		"exp":     now.Add(time.Hour).Unix(),
	}
}

func TestVerifyValidToken(t *testing.T) {
	f := newJWKSFixture(t)
	client := NewGoogleJWKSClient(f.server.URL, testProjectID)

	identity, err := client.Verify(f.sign(t, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "uid-123", identity.UID)
	assert.Equal(t, "user@example.com", identity.Email)
	assert.Equal(t, "Test User", identity.Name)
	assert.Equal(t, "https://img.example/u.png", identity.Picture)
}

func TestVerifyCachesSigningKeys(t *testing.T) {
	f := newJWKSFixture(t)
	client := NewGoogleJWKSClient(f.server.URL, testProjectID)

	_, err := client.Verify(f.sign(t, validClaims()))
	require.NoError(t, err)
	_, err = client.Verify(f.sign(t, validClaims()))
	require.NoError(t, err)

	assert.Equal(t, 1, f.fetches, "second verify is served from the key cache")
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	f := newJWKSFixture(t)
	client := NewGoogleJWKSClient(f.server.URL, testProjectID)

	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	_, err := client.Verify(f.sign(t, claims))
	assert.Error(t, err)
}

func TestVerifyRejectsMissingExpiry(t *testing.T) {
	f := newJWKSFixture(t)
	client := NewGoogleJWKSClient(f.server.URL, testProjectID)

	claims := validClaims()
	delete(claims, "exp")
	_, err := client.Verify(f.sign(t, claims))
	assert.Error(t, err)
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	f := newJWKSFixture(t)
	client := NewGoogleJWKSClient(f.server.URL, testProjectID)

	claims := validClaims()
	claims["aud"] = "some-other-project"
	_, err := client.Verify(f.sign(t, claims))
	assert.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	f := newJWKSFixture(t)
	client := NewGoogleJWKSClient(f.server.URL, testProjectID)

	claims := validClaims()
	claims["iss"] = "https://evil.example/" + testProjectID
	_, err := client.Verify(f.sign(t, claims))
	assert.Error(t, err)
}

func TestVerifyRejectsSymmetricAlgorithm(t *testing.T) {
	f := newJWKSFixture(t)
	client := NewGoogleJWKSClient(f.server.URL, testProjectID)

	// alg=none style downgrade: an HS256 token signed with a guessable
	// secret must never pass RS256-only verification.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims())
	token.Header["kid"] = f.kid
	signed, err := token.SignedString([]byte("guessable"))
	require.NoError(t, err)

	_, err = client.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyRejectsUnknownKid(t *testing.T) {
	f := newJWKSFixture(t)
	client := NewGoogleJWKSClient(f.server.URL, testProjectID)

	f.kid = "rotated-away"
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, validClaims())
	token.Header["kid"] = "never-published"
	signed, err := token.SignedString(f.key)
	require.NoError(t, err)

	_, err = client.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	f := newJWKSFixture(t)
	client := NewGoogleJWKSClient(f.server.URL, testProjectID)

	claims := validClaims()
	delete(claims, "sub")
	_, err := client.Verify(f.sign(t, claims))
	assert.Error(t, err)
}

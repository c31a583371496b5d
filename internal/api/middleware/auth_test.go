package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildpost/wildpost/internal/api/middleware"
	"github.com/wildpost/wildpost/internal/auth"
)

func newAuthFixture() (*auth.JWTService, func(http.Handler) http.Handler) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "middleware-test-key",
		Issuer:     "https://api.wildpost.jp",
		Audience:   "wildpost-admin",
	})
	allowlist := auth.ParseAllowlist("admin@example.com")
	return jwtService, middleware.AdminAuth(jwtService, allowlist)
}

func okHandler(t *testing.T, wantEmail string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantEmail, middleware.GetAdminEmail(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminAuth_ValidToken(t *testing.T) {
	jwtService, adminAuth := newAuthFixture()

	token, _, err := jwtService.GenerateSessionToken("admin@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	adminAuth(okHandler(t, "admin@example.com")).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuth_MissingHeader(t *testing.T) {
	_, adminAuth := newAuthFixture()

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/notifications", nil)
	w := httptest.NewRecorder()

	adminAuth(okHandler(t, "")).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestAdminAuth_MalformedHeader(t *testing.T) {
	_, adminAuth := newAuthFixture()

	for _, header := range []string{"Basic abc123", "Bearer", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/notifications", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()

		adminAuth(okHandler(t, "")).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAdminAuth_GarbageToken(t *testing.T) {
	_, adminAuth := newAuthFixture()

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/notifications", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	w := httptest.NewRecorder()

	adminAuth(okHandler(t, "")).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_EmailNotOnAllowlist(t *testing.T) {
	jwtService, adminAuth := newAuthFixture()

	token, _, err := jwtService.GenerateSessionToken("former-admin@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	adminAuth(okHandler(t, "")).ServeHTTP(w, req)

	// Valid token, revoked membership: locked out immediately.
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetAdminEmail_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, middleware.GetAdminEmail(req.Context()))
}

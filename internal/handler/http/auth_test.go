package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bunpo-app/bunpo/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// issueToken
// ─────────────────────────────────────────────

// TestIssueToken_ReturnsBearerHeader verifies that a valid request yields a
// JWT in the Authorization response header whose subject matches the
// requested user.
func TestIssueToken_ReturnsBearerHeader(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"user_id": 42}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	authHeader := rec.Header().Get("Authorization")
	require.NotEmpty(t, authHeader)
	require.True(t, strings.HasPrefix(authHeader, "Bearer "))

	tokenString, err := utils.ParseBearerToken(authHeader)
	require.NoError(t, err)

	token, err := utils.ValidateAndParseJWTToken(tokenString, h.app.TokenSignKey, h.app.TokenIssuer)
	require.NoError(t, err)
	assert.Equal(t, int64(42), token.UserID)
}

// TestIssueToken_InvalidJSON verifies that malformed bodies are rejected.
func TestIssueToken_InvalidJSON(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestIssueToken_NonPositiveUserID verifies that zero and negative user IDs
// never get a token.
func TestIssueToken_NonPositiveUserID(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	for _, body := range []string{`{"user_id": 0}`, `{"user_id": -7}`, `{}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equalf(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.Emptyf(t, rec.Header().Get("Authorization"), "body %s", body)
	}
}

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bunpo-app/bunpo/internal/config"
	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/internal/mock"
	"github.com/bunpo-app/bunpo/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestHandler(t *testing.T) (*Handler, *mock.MockUserRecordRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	records := mock.NewMockUserRecordRepository(ctrl)

	app := config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "bunpo-test",
		TokenDuration: time.Hour,
	}

	return NewHandler(records, app, logger.Nop()), records
}

// bearerFor issues a valid token for userID signed with the test handler's
// key, formatted as an Authorization header value.
func bearerFor(t *testing.T, h *Handler, userID int64) string {
	t.Helper()

	token, err := utils.GenerateJWTToken(h.app.TokenIssuer, userID, h.app.TokenDuration, h.app.TokenSignKey)
	require.NoError(t, err)

	return "Bearer " + token.SignedString
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_InitialisesHub(t *testing.T) {
	h, _ := newTestHandler(t)

	require.NotNil(t, h.hub)
	assert.NotNil(t, h.hub.subs)
}

// ─────────────────────────────────────────────
// Init (routing)
// ─────────────────────────────────────────────

// TestInit_UnknownRouteReturns404 verifies that requests outside the API
// surface are not swallowed by any middleware.
func TestInit_UnknownRouteReturns404(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestInit_ProtectedRoutesRequireAuth verifies that every record route is
// behind the auth middleware (401, not 404/405).
func TestInit_ProtectedRoutesRequireAuth(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	tests := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/api/users"},
		{http.MethodGet, "/api/users/1/record"},
		{http.MethodPut, "/api/users/1/favorites"},
		{http.MethodGet, "/api/users/1/watch"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s", tt.method, tt.target)
	}
}

// TestInit_TokenEndpointIsOpen verifies that the token endpoint does not
// require a bearer token.
func TestInit_TokenEndpointIsOpen(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Empty body fails JSON decoding, but it got past auth.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestInit_SetsTraceIDHeader verifies that every response carries a trace ID.
func TestInit_SetsTraceIDHeader(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/users/1/record", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

// TestInit_PropagatesIncomingTraceID verifies that a caller-supplied trace ID
// is echoed back instead of being replaced.
func TestInit_PropagatesIncomingTraceID(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/users/1/record", nil)
	req.Header.Set(traceIDHeader, "trace-abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "trace-abc", rec.Header().Get(traceIDHeader))
}

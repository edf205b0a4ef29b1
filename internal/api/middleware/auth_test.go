package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicereview/service-review-api/internal/mocks"
	"github.com/servicereview/service-review-api/internal/service/auth"
)

// echoEmailHandler records whether it ran and what identity the
// middleware attached.
type echoEmailHandler struct {
	called bool
	email  string
	found  bool
}

func (h *echoEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.email, h.found = GetUserEmail(r)
	w.WriteHeader(http.StatusOK)
}

func TestRequireSession(t *testing.T) {
	t.Parallel()

	t.Run("valid cookie passes identity through", func(t *testing.T) {
		t.Parallel()
		mw := NewAuthMiddleware(&mocks.MockJWTService{
			Claims: &auth.Claims{Email: "a@x.com"},
		})
		next := &echoEmailHandler{}

		req := httptest.NewRequest(http.MethodPost, "/services", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "some-token"})
		w := httptest.NewRecorder()
		mw.RequireSession(next).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, next.called)
		assert.True(t, next.found)
		assert.Equal(t, "a@x.com", next.email)
	})

	t.Run("missing cookie is 401", func(t *testing.T) {
		t.Parallel()
		mw := NewAuthMiddleware(&mocks.MockJWTService{})
		next := &echoEmailHandler{}

		req := httptest.NewRequest(http.MethodPost, "/services", nil)
		w := httptest.NewRecorder()
		mw.RequireSession(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, next.called)
	})

	t.Run("empty cookie value is 401", func(t *testing.T) {
		t.Parallel()
		mw := NewAuthMiddleware(&mocks.MockJWTService{})
		next := &echoEmailHandler{}

		req := httptest.NewRequest(http.MethodPost, "/services", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: ""})
		w := httptest.NewRecorder()
		mw.RequireSession(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, next.called)
	})

	t.Run("expired token is 401", func(t *testing.T) {
		t.Parallel()
		mw := NewAuthMiddleware(&mocks.MockJWTService{Err: auth.ErrExpiredToken})
		next := &echoEmailHandler{}

		req := httptest.NewRequest(http.MethodPost, "/services", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "stale"})
		w := httptest.NewRecorder()
		mw.RequireSession(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, next.called)
	})

	t.Run("invalid token is 401", func(t *testing.T) {
		t.Parallel()
		mw := NewAuthMiddleware(&mocks.MockJWTService{Err: auth.ErrInvalidToken})
		next := &echoEmailHandler{}

		req := httptest.NewRequest(http.MethodPost, "/services", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "garbage"})
		w := httptest.NewRecorder()
		mw.RequireSession(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, next.called)
	})
}

func TestRequireSessionWithRealService(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := auth.NewTestJWTService(
		"test-secret-that-is-long-enough-for-testing",
		time.Hour,
		func() time.Time { return fixedTime },
	)
	token, err := svc.IssueToken(context.Background(), "a@x.com", nil)
	require.NoError(t, err)

	mw := NewAuthMiddleware(svc)
	next := &echoEmailHandler{}

	req := httptest.NewRequest(http.MethodDelete, "/services/abc", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	mw.RequireSession(next).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@x.com", next.email)
}

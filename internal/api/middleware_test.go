package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"docgpt-backend/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func protectedEcho(t *testing.T, wantUserID uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		require.True(t, ok, "middleware must inject the user id")
		assert.Equal(t, wantUserID, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionAuthMiddleware_NoCookie(t *testing.T) {
	handler := SessionAuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a session")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat/threads", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized")
}

func TestSessionAuthMiddleware_InvalidToken(t *testing.T) {
	handler := SessionAuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a bad session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/chat/threads", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "garbage"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthMiddleware_WrongSecret(t *testing.T) {
	token, err := auth.NewSessionToken(uuid.New(), "some-other-secret")
	require.NoError(t, err)

	handler := SessionAuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a foreign session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/chat/threads", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	token, err := auth.NewSessionToken(userID, testSecret)
	require.NoError(t, err)

	handler := SessionAuthMiddleware(testSecret)(protectedEcho(t, userID))

	req := httptest.NewRequest(http.MethodGet, "/api/chat/threads", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

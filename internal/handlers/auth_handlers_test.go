package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docgpt-backend/internal/auth"
	api_models "docgpt-backend/internal/models"
	db_models "docgpt-backend/internal/models"
	"docgpt-backend/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

// stubAuthService returns canned results for the auth handler tests.
type stubAuthService struct {
	user  *db_models.User
	token string
	err   error
}

func (s *stubAuthService) Signup(ctx context.Context, username, password string) (*db_models.User, string, error) {
	return s.user, s.token, s.err
}

func (s *stubAuthService) Signin(ctx context.Context, username, password string) (*db_models.User, string, error) {
	return s.user, s.token, s.err
}

func validToken(t *testing.T) string {
	token, err := auth.NewSessionToken(uuid.New(), testSecret)
	require.NoError(t, err)
	return token
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestHandleSignup_Success(t *testing.T) {
	user := &db_models.User{ID: uuid.New(), Username: "alice"}
	h := NewAuthHandler(&stubAuthService{user: user, token: validToken(t)}, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(`{"username":"alice","password":"pw1"}`))
	rec := httptest.NewRecorder()
	h.HandleSignup(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Signup successful!")

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie, "signup must open a session")
	assert.NotEmpty(t, cookie.Value)
}

func TestHandleSignup_Duplicate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: services.ErrUserAlreadyExists}, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(`{"username":"alice","password":"pw2"}`))
	rec := httptest.NewRecorder()
	h.HandleSignup(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User already exists")
	assert.Nil(t, sessionCookie(t, rec))
}

func TestHandleSignup_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(`{"username":"alice"}`))
	rec := httptest.NewRecorder()
	h.HandleSignup(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSignup_BadPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h.HandleSignup(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSignin_Success(t *testing.T) {
	user := &db_models.User{ID: uuid.New(), Username: "alice"}
	h := NewAuthHandler(&stubAuthService{user: user, token: validToken(t)}, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", strings.NewReader(`{"username":"alice","password":"pw1"}`))
	rec := httptest.NewRecorder()
	h.HandleSignin(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Signin successful!")
	require.NotNil(t, sessionCookie(t, rec))
}

func TestHandleSignin_UnknownUser(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: services.ErrUserNotFound}, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", strings.NewReader(`{"username":"nobody","password":"pw1"}`))
	rec := httptest.NewRecorder()
	h.HandleSignin(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
	assert.Nil(t, sessionCookie(t, rec))
}

func TestHandleSignin_WrongPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: services.ErrInvalidCredentials}, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", strings.NewReader(`{"username":"alice","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.HandleSignin(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
	assert.Nil(t, sessionCookie(t, rec))
}

func TestHandleSignout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil)
	rec := httptest.NewRecorder()
	h.HandleSignout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Logged out successfully")

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestHandleCheckSession(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, testSecret)

	check := func(t *testing.T, req *http.Request, want bool) {
		rec := httptest.NewRecorder()
		h.HandleCheckSession(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api_models.CheckSessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, want, resp.IsLoggedIn)
	}

	t.Run("no cookie", func(t *testing.T) {
		check(t, httptest.NewRequest(http.MethodGet, "/api/auth/check-session", nil), false)
	})

	t.Run("invalid cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/check-session", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "garbage"})
		check(t, req, false)
	})

	t.Run("valid cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/check-session", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: validToken(t)})
		check(t, req, true)
	})
}

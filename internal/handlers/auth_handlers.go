package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"docgpt-backend/internal/auth"
	api_models "docgpt-backend/internal/models"
	db_models "docgpt-backend/internal/models"
	"docgpt-backend/internal/services"
	"docgpt-backend/pkg/httputil"
)

// AuthService defines the interface expected from the auth service.
// This promotes loose coupling and testability.
type AuthService interface {
	Signup(ctx context.Context, username, password string) (*db_models.User, string, error)
	Signin(ctx context.Context, username, password string) (*db_models.User, string, error)
}

type AuthHandler struct {
	authService   AuthService
	sessionSecret string
}

func NewAuthHandler(authSvc AuthService, sessionSecret string) *AuthHandler {
	return &AuthHandler{
		authService:   authSvc,
		sessionSecret: sessionSecret,
	}
}

// HandleSignup handles the POST /api/auth/signup request.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req api_models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Username == "" || req.Password == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	_, token, err := h.authService.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Printf("Signup handler failed for username %s: %v", req.Username, err)
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	auth.SetSessionCookie(w, token)
	httputil.RespondJSON(w, http.StatusCreated, api_models.MessageResponse{Message: "Signup successful!"})
}

// HandleSignin handles the POST /api/auth/signin request.
func (h *AuthHandler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	var req api_models.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Username == "" || req.Password == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	_, token, err := h.authService.Signin(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Printf("Signin handler failed for username %s: %v", req.Username, err)
		switch {
		case errors.Is(err, services.ErrUserNotFound),
			errors.Is(err, services.ErrInvalidCredentials):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	auth.SetSessionCookie(w, token)
	httputil.RespondJSON(w, http.StatusOK, api_models.MessageResponse{Message: "Signin successful!"})
}

// HandleSignout handles the POST /api/auth/signout request. The session is a
// signed cookie, so destroying it means expiring the cookie client-side.
func (h *AuthHandler) HandleSignout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	httputil.RespondJSON(w, http.StatusOK, api_models.MessageResponse{Message: "Logged out successfully"})
}

// HandleCheckSession handles the GET /api/auth/check-session request. It
// reports the logged-in state without side effects; an invalid or absent
// cookie is not an error, just a false.
func (h *AuthHandler) HandleCheckSession(w http.ResponseWriter, r *http.Request) {
	isLoggedIn := false
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
		if _, err := auth.ParseSessionToken(cookie.Value, h.sessionSecret); err == nil {
			isLoggedIn = true
		}
	}
	httputil.RespondJSON(w, http.StatusOK, api_models.CheckSessionResponse{IsLoggedIn: isLoggedIn})
}

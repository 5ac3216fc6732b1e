package api

import (
	"context"
	"log"
	"net/http"

	"docgpt-backend/internal/auth"
	"docgpt-backend/pkg/httputil"
)

// --- Session Middleware ---

// SessionAuthMiddleware verifies the session cookie issued at signup/signin.
// If valid, it injects the UserID into the request context; otherwise the
// request is rejected before the route handler runs.
func SessionAuthMiddleware(sessionSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookieName)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			userID, err := auth.ParseSessionToken(cookie.Value, sessionSecret)
			if err != nil {
				log.Printf("Auth Middleware: invalid session token: %v", err)
				httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), auth.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package api

import (
	"net/http"
	"time"

	"docgpt-backend/internal/config"
	"docgpt-backend/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	AuthHandler *handlers.AuthHandler
	ChatHandler *handlers.ChatHandlers
	Config      *config.Config
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// --- CORS Configuration ---
	// Credentialed requests from the configured frontend origin only, since
	// the session rides in a cookie.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.Config.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// --- Auth Routes ---
	r.Route("/api/auth", func(r chi.Router) {
		if deps.AuthHandler == nil {
			panic("AuthHandler dependency is nil in router setup")
		}
		r.Post("/signup", deps.AuthHandler.HandleSignup)
		r.Post("/signin", deps.AuthHandler.HandleSignin)
		r.Post("/signout", deps.AuthHandler.HandleSignout)
		r.Get("/check-session", deps.AuthHandler.HandleCheckSession)
	})

	// --- Chat Routes ---
	r.Route("/api/chat", func(r chi.Router) {
		if deps.ChatHandler == nil {
			panic("ChatHandler dependency is nil in router setup")
		}

		// Session-mode chat is keyed by a caller-supplied session id and
		// requires no account.
		r.Post("/message", deps.ChatHandler.HandleSessionChat)

		// Thread routes require an active session bound to a user id.
		r.Group(func(r chi.Router) {
			r.Use(SessionAuthMiddleware(deps.Config.SessionSecret))

			r.Post("/new-thread", deps.ChatHandler.HandleNewThread)
			r.Get("/threads", deps.ChatHandler.HandleListThreads)
			r.Post("/threads/{threadId}/message", deps.ChatHandler.HandleAddMessage)
			r.Get("/threads/{threadId}/messages", deps.ChatHandler.HandleGetThreadMessages)
		})
	})

	return r
}

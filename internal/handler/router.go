package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/wellnest/wellnest-api/internal/auth"
	"github.com/wellnest/wellnest-api/internal/middleware"
	"github.com/wellnest/wellnest-api/internal/repository"
)

// RouterDeps holds everything the router needs to wire the HTTP surface.
type RouterDeps struct {
	AuthHandler *AuthHTTPHandler
	Tokens      *auth.TokenService
	UserRepo    repository.UserRepository
	Logger      *zerolog.Logger
}

// NewRouter builds the service router: public auth endpoints, the token-gated
// profile surface, and a health check.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			deps.AuthHandler.RegisterRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(deps.Tokens, deps.UserRepo, deps.Logger))
			r.Get("/me", Me)
		})
	})

	return r
}

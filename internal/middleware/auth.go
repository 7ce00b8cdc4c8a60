package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wellnest/wellnest-api/internal/auth"
	"github.com/wellnest/wellnest-api/internal/model"
	"github.com/wellnest/wellnest-api/internal/repository"
)

type userContextKey struct{}

// UserFromContext returns the authenticated user attached by Authenticate,
// or nil when the request did not pass through the middleware.
func UserFromContext(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey{}).(*model.User)
	return user
}

// Authenticate gates protected routes behind a bearer token. It requires the
// literal "Bearer " prefix, verifies the token, resolves the embedded user id
// against the store, and attaches the user (without its password hash) to the
// request context. Every request re-verifies; results are never cached.
func Authenticate(
	tokens *auth.TokenService,
	userRepo repository.UserRepository,
	logger *zerolog.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondUnauthorized(w, "not authorised")
				return
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")

			userID, err := tokens.Verify(tokenString)
			if err != nil {
				respondUnauthorized(w, "token is invalid or has expired")
				return
			}

			user, err := userRepo.GetUser(r.Context(), userID)
			if err != nil {
				logger.Error().Err(err).Str("user_id", userID).Msg("failed to resolve token user")
				respondUnauthorized(w, "token is invalid or has expired")
				return
			}

			user.PasswordHash = ""

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

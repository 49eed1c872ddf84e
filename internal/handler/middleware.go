package handler

import (
	"context"
	"net/http"
	"strings"

	"scrooge-bank/internal/domain"
	"scrooge-bank/internal/errors"
	"scrooge-bank/internal/service"
)

type contextKey string

const userContextKey contextKey = "authenticated-user"

// UserFromContext returns the authenticated user placed by AuthMiddleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}

// AuthMiddleware resolves the Authorization bearer token to a user and
// stores it on the request context.
func AuthMiddleware(userService *service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeError(w, errors.ErrUnauthenticated)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == "" {
				writeError(w, errors.ErrUnauthenticated)
				return
			}

			user, err := userService.Authenticate(token)
			if err != nil {
				writeServiceError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole guards a subtree behind a single role.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeError(w, errors.ErrUnauthenticated)
				return
			}
			if user.Role != role {
				writeError(w, errors.ErrNotAuthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

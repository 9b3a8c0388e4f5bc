package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/filmclub/judgemental/internal/domain"
	"github.com/filmclub/judgemental/internal/repository"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext extracts the authenticated user from the request context.
// Returns nil for anonymous visitors.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// CurrentUser resolves the session cookie to a user row and injects it into
// the request context. Anonymous requests proceed without a user; a valid
// token whose user row no longer exists has its cookie cleared and is also
// treated as anonymous rather than failing the request.
func CurrentUser(sessions *Sessions, users *repository.UsersRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			email, err := sessions.Verify(cookie.Value)
			if err != nil {
				sessions.ClearCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByEmail(r.Context(), email)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					sessions.ClearCookie(w)
					next.ServeHTTP(w, r)
					return
				}
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, &user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

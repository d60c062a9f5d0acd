package handler

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/prasitsang/stockroom-api/internal/model"
	"github.com/prasitsang/stockroom-api/internal/repository"
	"github.com/prasitsang/stockroom-api/shared/auth"
)

// sessionCookieName is the fixed cookie under which the session credential
// travels.
const sessionCookieName = "token"

type contextKey struct{}

var userContextKey = contextKey{}

// CurrentUser returns the identity resolved by Authenticate, or nil on
// unprotected routes.
func CurrentUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// Authenticate is the auth gate for protected routes. It extracts the
// session cookie, verifies the credential and resolves the acting user. Any
// failure, including a user deleted after issuance, yields a 401 and the
// wrapped handler never runs.
func Authenticate(
	jwtAuth auth.JWTAuthenticator,
	userRepo repository.UserRepository,
	logger *zerolog.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				respondError(w, http.StatusUnauthorized, "not authorized, please login")
				return
			}

			userID, err := jwtAuth.Verify(cookie.Value)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "not authorized, please login")
				return
			}

			user, err := userRepo.GetUser(r.Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					respondError(w, http.StatusUnauthorized, "not authorized, please login")
					return
				}

				logger.Error().Err(err).Msg("failed to resolve authenticated user")
				respondError(w, http.StatusInternalServerError, "something went wrong")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Recoverer is the global boundary handler: panics become a generic 500
// JSON body without leaking internals, and the process keeps serving.
func Recoverer(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Interface("panic", rec).
						Bytes("stack", debug.Stack()).
						Msg("recovered from panic")
					respondError(w, http.StatusInternalServerError, "something went wrong")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

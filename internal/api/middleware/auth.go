package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/zerolog/log"

	"myflix/internal/common"
	"myflix/internal/common/security"
)

type contextKey string

const (
	UsernameCtxKey contextKey = "username"
	UserIDCtxKey   contextKey = "userID"
)

// Authenticator guards every protected operation. Verification
// failures are classified for the server log but the client always
// sees the same 401.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			log.Warn().
				Str("reason", security.TokenFailureReason(err)).
				Str("path", r.URL.Path).
				Msg("rejected bearer credential")
			common.RespondWithError(w, http.StatusUnauthorized, "invalid or missing token")
			return
		}

		username, err := security.UsernameFromClaims(claims)
		if err != nil {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("rejected bearer credential")
			common.RespondWithError(w, http.StatusUnauthorized, "invalid or missing token")
			return
		}
		userID, err := security.UserIDFromClaims(claims)
		if err != nil {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("rejected bearer credential")
			common.RespondWithError(w, http.StatusUnauthorized, "invalid or missing token")
			return
		}

		ctx := context.WithValue(r.Context(), UsernameCtxKey, username)
		ctx = context.WithValue(ctx, UserIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSelf scopes account operations to the token's own identity:
// the {username} path segment must match the verified username.
func RequireSelf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := GetUsernameFromContext(r.Context())
		if !ok || username != chi.URLParam(r, "username") {
			common.RespondWithError(w, http.StatusForbidden, "you may only act on your own account")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Helper to get the verified username from context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}

// Helper to get the verified user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

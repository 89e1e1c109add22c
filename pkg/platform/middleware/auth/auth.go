package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"pharmafinder/pkg/requestcontext"
)

// CallerValidator defines the interface for validating caller bearer tokens.
type CallerValidator interface {
	ValidateToken(tokenString string) (*CallerClaims, error)
}

// CallerClaims represents the claims we expect from the token validator.
type CallerClaims struct {
	UID string
	JTI string
}

// OptionalCaller resolves the caller identity from the Authorization header
// when one is present and valid. It never rejects the request: callable
// handlers decide what an anonymous caller means.
func OptionalCaller(validator CallerValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "ignoring invalid caller token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx = requestcontext.WithCallerUID(ctx, claims.UID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gatherhub/server/internal/api/problem"
	"github.com/gatherhub/server/internal/auth"
)

type contextKey string

const claimsKey contextKey = "authClaims"

// RequireAuth guards protected routes. It pulls the bearer token out of the
// Authorization header, validates it, and stores the decoded claims in the
// request context. A missing token is 401; a token that fails validation
// (tampered or expired, the two are not distinguished) is 403. Routes not
// wrapped by this middleware never consult the header.
func RequireAuth(manager *auth.JWTManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Access denied. No token.", err, env)
				return
			}

			claims, err := manager.Validate(token)
			if err != nil {
				if errors.Is(err, auth.ErrMissingToken) {
					problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Access denied. No token.", err, env)
					return
				}
				problem.Write(w, r, http.StatusForbidden, problem.TypeForbidden, "Invalid token", err, env)
				return
			}

			ctx := ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ContextWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext retrieves the authenticated identity, or nil when the
// request did not pass through RequireAuth.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	if ctx == nil {
		return nil
	}
	if claims, ok := ctx.Value(claimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

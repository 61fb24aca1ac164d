package middleware

import (
	"context"
	"net/http"
	"strings"

	"rhportal/internal/domain/auth"
	"rhportal/internal/transport/http/api"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

// RequireAuth enforces the bearer-token contract on everything behind it:
// a missing credential is 401, a present-but-invalid (or expired) one is 403.
// There is no pass-through; login is the only route mounted outside it.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.Fail(w, http.StatusUnauthorized, "token_missing", "authentication required", GetRequestID(r.Context()))
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				api.Fail(w, http.StatusForbidden, "token_invalid", "invalid or expired token", GetRequestID(r.Context()))
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				api.Fail(w, http.StatusForbidden, "token_invalid", "invalid or expired token", GetRequestID(r.Context()))
				return
			}

			identity := auth.Identity{
				EmployeeID: claims.EmployeeID,
				Email:      claims.Email,
				Role:       auth.Role(claims.Role),
			}
			ctx := context.WithValue(r.Context(), ctxKeyUser, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (auth.Identity, bool) {
	user, ok := ctx.Value(ctxKeyUser).(auth.Identity)
	return user, ok
}

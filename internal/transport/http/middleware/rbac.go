package middleware

import (
	"net/http"

	"rhportal/internal/transport/http/api"
)

// RequireAdmin gates administrator-only routes. It assumes RequireAuth ran
// first; a request without an identity is treated as unauthenticated.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			api.Fail(w, http.StatusUnauthorized, "token_missing", "authentication required", GetRequestID(r.Context()))
			return
		}
		if !user.IsAdmin() {
			api.Fail(w, http.StatusForbidden, "forbidden", "administrator role required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

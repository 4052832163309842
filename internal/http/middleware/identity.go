package middleware

import (
	"context"
	"net/http"
	"strconv"

	"freight-broker-service/internal/domain"
)

// Identity headers set by the authenticating gateway in front of this
// service. The engine trusts them as already verified.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

type identityKey struct{}

// Identity is the authenticated caller extracted from request headers.
type Identity struct {
	UserID int64
	Role   domain.Role
}

// WithIdentity parses the identity headers into the request context.
// Requests without a valid identity are rejected with 401.
func WithIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		role := domain.Role(r.Header.Get(HeaderUserRole))
		if err != nil || id <= 0 || !role.Valid() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"missing or invalid identity"}`))
			return
		}
		ctx := context.WithValue(r.Context(), identityKey{}, Identity{UserID: id, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext returns the caller identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// RequireRole rejects requests whose caller does not hold the role.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok || id.Role != role {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"food-delivery-dispatch/internal/domain"
)

// Headers set by the authenticating edge proxy.
const (
	HeaderUserRole = "X-User-Role"
	HeaderUserID   = "X-User-ID"
)

type identityKey struct{}

// ParseIdentity reads the caller identity from the request headers.
func ParseIdentity(r *http.Request) (domain.Identity, bool) {
	role := domain.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole))))
	id, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(HeaderUserID)), 10, 64)
	if err != nil {
		return domain.Identity{}, false
	}
	who := domain.Identity{Role: role, ID: id}
	return who, who.Valid()
}

// WithIdentity returns a copy of ctx carrying who.
func WithIdentity(ctx context.Context, who domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, who)
}

// IdentityFrom returns the identity stored by Identify.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	who, ok := ctx.Value(identityKey{}).(domain.Identity)
	return who, ok
}

// Identify stores the header identity in the request context. Anonymous
// requests pass through unchanged.
func Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if who, ok := ParseIdentity(r); ok {
			r = r.WithContext(WithIdentity(r.Context(), who))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects anonymous callers with 401 and callers of other roles
// with 403. Without roles any authenticated caller passes.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			who, ok := IdentityFrom(r.Context())
			if !ok {
				writeStatus(w, http.StatusUnauthorized, "unauthenticated")
				return
			}
			if len(roles) > 0 && !hasRole(roles, who.Role) {
				writeStatus(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hasRole(roles []domain.Role, role domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func writeStatus(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}

package auth

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

type contextKey string

const (
	identityKey   contextKey = "auth.identity"
	sessionKeyKey contextKey = "auth.session"
)

// Middleware extracts the caller identity from a bearer token when one
// is present. Requests without a valid token still pass through so that
// anonymous carts keyed by X-Session-ID keep working; handlers that
// need an identity check for it explicitly.
func Middleware(service Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
				if identity, err := service.Verify(strings.TrimPrefix(header, "Bearer ")); err == nil {
					ctx = context.WithValue(ctx, identityKey, identity)
					ctx = context.WithValue(ctx, sessionKeyKey, identity.Role+":"+strconv.FormatInt(identity.ID, 10))
				}
			}

			if _, ok := ctx.Value(sessionKeyKey).(string); !ok {
				if sid := r.Header.Get("X-Session-ID"); sid != "" {
					ctx = context.WithValue(ctx, sessionKeyKey, "session:"+sid)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok
}

// CustomerIDFromContext returns the authenticated customer id, if the
// caller is a customer.
func CustomerIDFromContext(ctx context.Context) (int64, bool) {
	identity, ok := IdentityFromContext(ctx)
	if !ok || identity.Role != RoleCustomer {
		return 0, false
	}
	return identity.ID, true
}

// SessionKeyFromContext returns the cart session key for the caller:
// derived from the identity when logged in, from X-Session-ID otherwise.
func SessionKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(sessionKeyKey).(string)
	return key, ok
}

package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/yukta/symposium/internal/common"
	"github.com/yukta/symposium/internal/server/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// SessionVerifier resolves a session token into claims.
type SessionVerifier interface {
	WhoAmI(ctx context.Context, token string) (*auth.Claims, error)
}

// Gate admits requests carrying a valid session cookie and stores its claims
// in the request context. A missing cookie is answered with 401, a cookie
// that fails verification with 403.
func Gate(v SessionVerifier, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := v.WhoAmI(r.Context(), tokenFromRequest(r, cookieName))
			switch {
			case err == nil:
			case errors.Is(err, common.ErrUnauthenticated):
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			default:
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims stored by Gate.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok && c != nil
}

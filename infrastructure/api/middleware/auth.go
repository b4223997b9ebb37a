package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/latticehq/lattice/domain/identity"
	"github.com/latticehq/lattice/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenResolver maps a bearer token to a caller identity.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (identity.Identity, error)
}

// StaticTokenResolver resolves tokens from a fixed in-memory map.
type StaticTokenResolver struct {
	tokens map[string]identity.Identity
}

// NewStaticTokenResolver creates a StaticTokenResolver.
func NewStaticTokenResolver(tokens map[string]identity.Identity) StaticTokenResolver {
	copied := make(map[string]identity.Identity, len(tokens))
	for k, v := range tokens {
		copied[k] = v
	}
	return StaticTokenResolver{tokens: copied}
}

// Resolve implements TokenResolver.
func (r StaticTokenResolver) Resolve(_ context.Context, token string) (identity.Identity, error) {
	ident, ok := r.tokens[token]
	if !ok {
		return identity.Identity{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	return ident, nil
}

// Authenticate returns a middleware that resolves the caller identity from
// the Authorization header. Requests without a bearer token proceed as
// anonymous; requests with a token the resolver rejects get 401.
func Authenticate(resolver TokenResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := identity.Anonymous()

			header := r.Header.Get("Authorization")
			if header != "" {
				token, ok := strings.CutPrefix(header, "Bearer ")
				if !ok {
					WriteError(w, r, fmt.Errorf("%w: authorization header must use the Bearer scheme", domain.ErrUnauthorized), logger)
					return
				}
				resolved, err := resolver.Resolve(r.Context(), token)
				if err != nil {
					WriteError(w, r, err, logger)
					return
				}
				caller = resolved
			}

			ctx := context.WithValue(r.Context(), identityKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the caller identity stored by Authenticate, or the
// anonymous identity when the middleware did not run.
func IdentityFrom(ctx context.Context) identity.Identity {
	if ident, ok := ctx.Value(identityKey).(identity.Identity); ok {
		return ident
	}
	return identity.Anonymous()
}

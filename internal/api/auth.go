package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/memoflow/memoflow/internal/identity"
	"github.com/memoflow/memoflow/internal/model"
)

type contextKey string

const identityKey contextKey = "identity"

// ExtractCredential extracts the bearer credential from the Authorization header.
func ExtractCredential(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("missing Authorization header")
	}

	// Expect "Bearer <credential>" format
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid Authorization header format, expected 'Bearer <credential>'")
	}
	return parts[1], nil
}

// Authenticate resolves the bearer credential to an identity on every
// request and stores it in the request context. Unauthenticated requests
// never reach downstream handlers.
func Authenticate(provider identity.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential, err := ExtractCredential(r)
			if err != nil {
				writeUnauthorized(w, err)
				return
			}
			ident, err := provider.Authenticate(r.Context(), credential)
			if err != nil {
				writeUnauthorized(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the authenticated identity stored by Authenticate.
func IdentityFrom(ctx context.Context) (*model.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(*model.Identity)
	return ident, ok
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized","code":401,"message":"` + err.Error() + `"}`))
}

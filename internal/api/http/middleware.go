package httpapi

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/ViktorDebugger/DeliFood-server/internal/auth"
)

type contextKey string

const identityKey contextKey = "identity"

// AuthMiddleware gates handlers behind a verified bearer credential. Requests
// without a well-formed Authorization header are rejected before the identity
// provider is ever contacted.
type AuthMiddleware struct {
	Gateway auth.Gateway
}

func NewAuthMiddleware(gateway auth.Gateway) *AuthMiddleware {
	return &AuthMiddleware{Gateway: gateway}
}

func (m *AuthMiddleware) Protect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			writeError(w, http.StatusUnauthorized, "Неавторизований доступ", nil)
			return
		}

		identity, err := m.Gateway.VerifyCredential(r.Context(), token)
		if err != nil {
			log.Printf("credential verification failed: %v", err)
			writeError(w, http.StatusUnauthorized, "Неавторизований доступ", nil)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next(w, r.WithContext(ctx))
	}
}

// IdentityFrom returns the identity attached by Protect, or nil for requests
// that never passed through it.
func IdentityFrom(r *http.Request) *auth.Identity {
	identity, _ := r.Context().Value(identityKey).(*auth.Identity)
	return identity
}

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"gestionrecursos/internal/auth"
	"gestionrecursos/pkg/logger"
)

type contextKey string

const IdentityKey contextKey = "identity"

// IdentityFrom returns the identity the auth gate attached to the request
// context, or nil when the request never passed the gate.
func IdentityFrom(ctx context.Context) *auth.Identity {
	identity, _ := ctx.Value(IdentityKey).(*auth.Identity)
	return identity
}

// Auth is the bearer-token gate every resource operation sits behind.
// Requests without a well-formed Authorization header are rejected with
// 401; requests whose token fails verification are rejected with 403. On
// success the decoded identity is attached to the request context.
func Auth(verifier auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "No se proporcionó token de autenticación")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == "" {
				writeError(w, http.StatusUnauthorized, "No se proporcionó token de autenticación")
				return
			}

			identity, err := verifier.Verify(tokenString)
			if err != nil {
				logger.Sugar.Infof("Token verification failed: %v", err)
				writeError(w, http.StatusForbidden, "Token inválido o expirado")
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

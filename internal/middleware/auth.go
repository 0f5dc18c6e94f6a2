package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gatehouse/gatehouse/internal/auth"
	"github.com/gatehouse/gatehouse/internal/logger"
)

type contextKey string

const identityKey contextKey = "auth_identity"

// Identity is the authenticated principal attached to the request context
// for the duration of one request.
type Identity struct {
	UserID string
}

// AuthMiddleware gates protected handlers on a valid access token cookie.
// Token validity alone authorizes; it performs no user-existence check.
type AuthMiddleware struct {
	transport *auth.SessionTransport
	tokens    *auth.JWTManager
	log       *logger.Logger
}

func NewAuthMiddleware(transport *auth.SessionTransport, tokens *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{
		transport: transport,
		tokens:    tokens,
		log:       logger.New("auth-guard"),
	}
}

func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := m.transport.Extract(r)
		if err != nil {
			unauthorized(w, "no session")
			return
		}

		claims, err := m.tokens.VerifyAccess(raw)
		if err != nil {
			// The specific failure stays in the logs; clients get a
			// uniform rejection.
			m.log.Warn("Rejected token: %v", err)
			unauthorized(w, "invalid session")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, Identity{UserID: claims.UserID})
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// GetIdentity returns the identity attached by RequireAuth, if any.
func GetIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

func GetUserID(ctx context.Context) string {
	if identity, ok := GetIdentity(ctx); ok {
		return identity.UserID
	}
	return ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"data":    nil,
		"message": message,
	})
}

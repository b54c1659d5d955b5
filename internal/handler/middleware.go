package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/Junaid083/SprintSync/internal/token"
	"github.com/Junaid083/SprintSync/pkg/respond"
)

// SessionCookie carries the session credential. A Bearer header is accepted
// as an alternative transport.
const SessionCookie = "auth_token"

type ctxKey int

const claimsKey ctxKey = iota

type AuthMiddleware struct {
	tokens *token.Service
}

func NewAuthMiddleware(tokens *token.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth resolves the session credential before any scope or
// persistence logic runs. Absent, malformed, expired and forged
// credentials all end the request with a 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := credentialFrom(r)
		if raw == "" {
			respond.Error(w, r, http.StatusUnauthorized, "Please log in")
			return
		}

		claims, err := m.tokens.Verify(raw)
		if err != nil {
			writeError(w, r, nil, err)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func credentialFrom(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// ClaimsFrom returns the verified claims stored by RequireAuth.
func ClaimsFrom(ctx context.Context) (token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(token.Claims)
	return claims, ok
}

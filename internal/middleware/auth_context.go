package middleware

import (
	"context"
	"net/http"
	"strings"

	"cat-registry/internal/platform/logger"
	"cat-registry/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// Headers de modo dev (sin verifier).
const (
	DebugUserIDHeader   = "X-Debug-User-ID"
	DebugUserRoleHeader = "X-Debug-User-Role"
	DebugUserNameHeader = "X-Debug-User-Name"
	DebugEmailHeader    = "X-Debug-User-Email"
)

// AuthContext:
// - Si verifier != nil y viene Bearer token => intenta Verify() y setea claims.
// - Si verifier == nil => modo dev: X-Debug-User-ID (+ role/name/email opcionales).
// - Sin claims el request sigue igual; el servicio decide 401/403.
func AuthContext(verifier auth.AuthVerifier, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if claims, ok := debugClaims(r); ok {
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				log.Debug("token rejected", map[string]any{"error": err, "path": r.URL.Path})
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// Caller devuelve los claims o el valor vacío (no autenticado).
func Caller(ctx context.Context) auth.Claims {
	c, _ := GetClaims(ctx)
	return c
}

func debugClaims(r *http.Request) (auth.Claims, bool) {
	uid := strings.TrimSpace(r.Header.Get(DebugUserIDHeader))
	if uid == "" {
		return auth.Claims{}, false
	}
	role := auth.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(DebugUserRoleHeader))))
	if role != auth.RoleAdmin {
		role = auth.RoleUser
	}
	return auth.Claims{
		UserID:   uid,
		UserName: strings.TrimSpace(r.Header.Get(DebugUserNameHeader)),
		Email:    strings.TrimSpace(r.Header.Get(DebugEmailHeader)),
		Role:     role,
	}, true
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

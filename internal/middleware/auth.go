package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tindahan/tindahan/internal/authz"
	"github.com/tindahan/tindahan/internal/service"
)

type principalCtxKey struct{}

// publicRoutes are exempt from authentication, keyed by "METHOD path".
// Registration is public; every other profile operation is not, so the
// exemption has to be method-aware.
var publicRoutes = map[string]bool{
	"GET /health":               true,
	"POST /api/v1/auth/login":   true,
	"POST /api/v1/auth/refresh": true,
	"POST /api/v1/profiles":     true,
}

// unauthorized writes a 401 with the same JSON error shape the handler
// layer produces.
func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Auth returns middleware that validates the bearer token and stores the
// resolved principal in the request context.
func Auth(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicRoutes[r.Method+" "+r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "authorization required")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				unauthorized(w, "invalid authorization header")
				return
			}

			claims, err := authSvc.ValidateAccessToken(token)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), principalCtxKey{}, authz.FromClaims(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the authenticated principal from the
// request context, or nil when the route was public.
func PrincipalFromContext(ctx context.Context) *authz.Principal {
	p, _ := ctx.Value(principalCtxKey{}).(*authz.Principal)
	return p
}

// WithPrincipal stores a principal in the context. Exported for handler
// tests that bypass the middleware.
func WithPrincipal(ctx context.Context, p *authz.Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

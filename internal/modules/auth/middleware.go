package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/anafloresm/ropita-backend/internal/modules/user"
	"github.com/anafloresm/ropita-backend/internal/platform/web"
)

type ctxKey struct{}

// ClaimsFrom returns the claims stored by Middleware, or nil when the
// request was not authenticated.
func ClaimsFrom(ctx context.Context) *Claims {
	claims, _ := ctx.Value(ctxKey{}).(*Claims)
	return claims
}

// Middleware returns a middleware that requires a valid Bearer access
// token and stores its claims on the request context.
func Middleware(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromHeader(svc, r)
			if err != nil {
				web.Error(w, http.StatusUnauthorized, err.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
		})
	}
}

// AdminOnly is Middleware plus a role check.
func AdminOnly(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromHeader(svc, r)
			if err != nil {
				web.Error(w, http.StatusUnauthorized, err.Error())
				return
			}
			if claims.Role != user.RoleAdmin {
				web.Error(w, http.StatusForbidden, "admin role required")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
		})
	}
}

func claimsFromHeader(svc Service, r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, ErrInvalidToken
	}
	return svc.Verify(token)
}

package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/tablerota/rota-backend-go/internal/domain/auth"
	"github.com/tablerota/rota-backend-go/internal/handler/http/response"
	"github.com/tablerota/rota-backend-go/internal/pkg/tenant"
)

// AuthRequired rejects requests without a valid access token and stores the
// token's tenant slug in the request context so repositories can resolve
// the tenant database.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			slug, ok := claims["tenant"].(string)
			if !ok || slug == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(tenant.WithTenant(r.Context(), slug)))
		}
		return http.HandlerFunc(hfn)
	}
}

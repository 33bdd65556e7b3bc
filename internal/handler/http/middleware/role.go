package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/tablerota/rota-backend-go/internal/domain/account"
	"github.com/tablerota/rota-backend-go/internal/handler/http/response"
)

func levelFromRequest(r *http.Request) (account.Level, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	level, ok := claims["level"].(string)
	if !ok || level == "" {
		return "", false
	}
	return account.Level(level), true
}

// RequireApprover requires admin, assistant manager or manager level.
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		level, ok := levelFromRequest(r)
		if !ok || !level.IsApprover() {
			response.HandleError(w, account.ErrApproverAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/tablerota/rota-backend-go/internal/domain/account"
)

// tokenClaims is the decoded access-token payload handlers care about.
type tokenClaims struct {
	AccountID  string
	Email      string
	Level      account.Level
	EmployeeID string // empty when the account is not linked to a staff record
}

func claimsFromRequest(r *http.Request) (tokenClaims, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return tokenClaims{}, false
	}

	tc := tokenClaims{}
	if v, ok := claims["account_id"].(string); ok {
		tc.AccountID = v
	}
	if v, ok := claims["email"].(string); ok {
		tc.Email = v
	}
	if v, ok := claims["level"].(string); ok {
		tc.Level = account.Level(v)
	}
	if v, ok := claims["employee_id"].(string); ok {
		tc.EmployeeID = v
	}
	return tc, tc.AccountID != ""
}

package auth

import (
	"github.com/tablerota/rota-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "Invalid email"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "Password is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	AccessToken           string  `json:"access_token"`
	AccessTokenExpiresAt  int64   `json:"access_token_expires_at"`
	RefreshToken          string  `json:"-"` // delivered as an HTTP-only cookie
	RefreshTokenExpiresAt int64   `json:"-"`
	Tenant                string  `json:"tenant"`
	Level                 string  `json:"level"`
	EmployeeID            *string `json:"employee_id,omitempty"`
}

type RefreshResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresAt int64  `json:"access_token_expires_at"`
}

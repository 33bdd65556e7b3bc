package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/tablerota/rota-backend-go/internal/domain/account"
	"github.com/tablerota/rota-backend-go/internal/domain/auth"
	"github.com/tablerota/rota-backend-go/internal/pkg/jwt"
)

type authServiceImpl struct {
	accountRepo account.Repository
	jwtService  jwt.Service
}

func NewAuthService(accountRepo account.Repository, jwtService jwt.Service) auth.Service {
	return &authServiceImpl{
		accountRepo: accountRepo,
		jwtService:  jwtService,
	}
}

// Login implements auth.Service. A missing account and a wrong password
// produce the same error so the response does not leak which emails exist.
func (s *authServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	acct, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(acct.ID, acct.Email, acct.Tenant, acct.Level, acct.EmployeeID)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(acct.ID)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
		Tenant:                acct.Tenant,
		Level:                 string(acct.Level),
		EmployeeID:            acct.EmployeeID,
	}, nil
}

// Refresh implements auth.Service.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, auth.ErrRefreshTokenRevoked
	}

	accountID, err := s.jwtService.DecodeRefreshToken(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	acct, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return auth.RefreshResponse{}, auth.ErrInvalidToken
		}
		return auth.RefreshResponse{}, err
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(acct.ID, acct.Email, acct.Tenant, acct.Level, acct.EmployeeID)
	if err != nil {
		return auth.RefreshResponse{}, err
	}

	return auth.RefreshResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt,
	}, nil
}

// Logout implements auth.Service. The refresh token is revoked so it cannot
// mint further access tokens; the current access token simply ages out.
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	s.jwtService.RevokeToken(refreshToken)
	return nil
}

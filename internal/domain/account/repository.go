package account

import (
	"context"
)

// Repository - interface for the accounts table in the access database
type Repository interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
}

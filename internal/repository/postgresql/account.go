package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/tablerota/rota-backend-go/internal/domain/account"
	"github.com/tablerota/rota-backend-go/internal/pkg/database"
)

// accountRepositoryImpl reads the shared access database, not a tenant
// database, so it holds its pool directly.
type accountRepositoryImpl struct {
	db *database.DB
}

func NewAccountRepository(db *database.DB) account.Repository {
	return &accountRepositoryImpl{db: db}
}

const accountColumns = `
	id, email, password_hash, tenant, level, employee_id, created_at, updated_at`

func scanAccount(row pgx.Row) (account.Account, error) {
	var a account.Account
	err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Tenant, &a.Level, &a.EmployeeID,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *accountRepositoryImpl) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAccount(q.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE LOWER(email) = LOWER($1)
	`, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return account.Account{}, account.ErrAccountNotFound
		}
		return account.Account{}, err
	}
	return a, nil
}

func (r *accountRepositoryImpl) GetByID(ctx context.Context, id string) (account.Account, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAccount(q.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE id = $1
	`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return account.Account{}, account.ErrAccountNotFound
		}
		return account.Account{}, err
	}
	return a, nil
}

package account

import "time"

// Account lives in the shared access database and maps a credential to a
// tenant database and a permission level.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Tenant       string // tenant database slug
	Level        Level
	EmployeeID   *string // row in the tenant's employees table, if linked
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

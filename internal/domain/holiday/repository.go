package holiday

import (
	"context"
)

// RequestRepository - interface for the holiday_requests table
type RequestRepository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	// GetByIDForUpdate locks the request row so a decision cannot race
	// another decision on the same request.
	GetByIDForUpdate(ctx context.Context, id string) (Request, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	GetPending(ctx context.Context) ([]Request, error)
	UpdateDecision(ctx context.Context, r Request) error
}

// YearRepository - interface for the holiday_years table
type YearRepository interface {
	GetAll(ctx context.Context) ([]YearWindow, error)
}

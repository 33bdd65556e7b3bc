package shift

import (
	"context"
	"time"
)

// Repository - interface for the shifts table
type Repository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id int64) (Shift, error)
	GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) ([]Shift, error)
	// GetByEmployeeAndDayForUpdate locks the matching rows for the duration
	// of the surrounding transaction (SELECT ... FOR UPDATE).
	GetByEmployeeAndDayForUpdate(ctx context.Context, employeeID string, day time.Time) ([]Shift, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]Shift, error)
	GetByDay(ctx context.Context, day time.Time) ([]Shift, error)
	GetAll(ctx context.Context) ([]Shift, error)
	Update(ctx context.Context, s Shift) error
	Delete(ctx context.Context, id int64) error
	DeleteByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) error
	IDExists(ctx context.Context, id int64) (bool, error)
}

// RequestRepository - interface for the shift_requests table
type RequestRepository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id int64) (Request, error)
	// GetByIDForUpdate locks the request row for the accept flow.
	GetByIDForUpdate(ctx context.Context, id int64) (Request, error)
	GetPending(ctx context.Context) ([]Request, error)
	// MarkAccepted flips the request to accepted and records who accepted it.
	MarkAccepted(ctx context.Context, id int64, acceptedBy string) error
	Delete(ctx context.Context, id int64) error
	IDExists(ctx context.Context, id int64) (bool, error)
}

package employee

import (
	"context"
)

// Repository - interface for the employees table
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	// GetByName resolves legacy (first name, last name) keys during data
	// ingestion. New code paths must match by id.
	GetByName(ctx context.Context, firstName, lastName string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Search(ctx context.Context, query string) ([]Employee, error)
}

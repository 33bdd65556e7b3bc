package employee

import (
	"context"
)

type Service interface {
	GetEmployee(ctx context.Context, id string) (Response, error)
	ListEmployees(ctx context.Context) ([]Response, error)
	SearchEmployees(ctx context.Context, query string) ([]Response, error)
}

package employee

import (
	"context"
	"strings"

	"github.com/tablerota/rota-backend-go/internal/domain/employee"
)

type employeeServiceImpl struct {
	employeeRepo employee.Repository
}

func NewEmployeeService(employeeRepo employee.Repository) employee.Service {
	return &employeeServiceImpl{employeeRepo: employeeRepo}
}

// GetEmployee implements employee.Service.
func (s *employeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.Response, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Response{}, err
	}
	return employee.NewResponse(emp), nil
}

// ListEmployees implements employee.Service.
func (s *employeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.Response, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return employee.NewResponses(employees), nil
}

// SearchEmployees implements employee.Service. An empty query falls back to
// the full list.
func (s *employeeServiceImpl) SearchEmployees(ctx context.Context, query string) ([]employee.Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListEmployees(ctx)
	}
	employees, err := s.employeeRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return employee.NewResponses(employees), nil
}

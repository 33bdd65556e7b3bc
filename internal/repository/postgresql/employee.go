package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tablerota/rota-backend-go/internal/domain/employee"
	"github.com/tablerota/rota-backend-go/internal/pkg/database"
	"github.com/tablerota/rota-backend-go/internal/pkg/tenant"
)

const employeeColumns = `
	id, first_name, last_name, email, wage, designation, allowance_days,
	created_at, updated_at`

type employeeRepositoryImpl struct {
	reg *tenant.Registry
}

func NewEmployeeRepository(reg *tenant.Registry) employee.Repository {
	return &employeeRepositoryImpl{reg: reg}
}

func (r *employeeRepositoryImpl) querier(ctx context.Context) (database.Querier, error) {
	db, err := r.reg.DB(ctx)
	if err != nil {
		return nil, err
	}
	return GetQuerier(ctx, db), nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Wage, &e.Designation,
		&e.AllowanceDays, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	e, err := scanEmployee(q.QueryRow(ctx, `
		SELECT `+employeeColumns+` FROM employees WHERE id = $1
	`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	e, err := scanEmployee(q.QueryRow(ctx, `
		SELECT `+employeeColumns+` FROM employees WHERE LOWER(email) = LOWER($1)
	`, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) GetByName(ctx context.Context, firstName, lastName string) (employee.Employee, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	// Legacy lookup: normalized case-insensitive match on both parts.
	e, err := scanEmployee(q.QueryRow(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE LOWER(TRIM(first_name)) = LOWER(TRIM($1))
		  AND LOWER(TRIM(last_name)) = LOWER(TRIM($2))
	`, firstName, lastName))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `
		SELECT `+employeeColumns+` FROM employees ORDER BY last_name, first_name
	`)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

func (r *employeeRepositoryImpl) Search(ctx context.Context, query string) ([]employee.Employee, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1
		ORDER BY last_name, first_name
	`, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return employees, nil
}

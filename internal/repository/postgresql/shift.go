package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tablerota/rota-backend-go/internal/domain/shift"
	"github.com/tablerota/rota-backend-go/internal/pkg/database"
	"github.com/tablerota/rota-backend-go/internal/pkg/tenant"
)

const shiftColumns = `
	s.id, s.employee_id, s.day, s.start_time::text, s.end_time::text,
	s.wage, s.designation, s.created_at, s.updated_at,
	e.first_name || ' ' || e.last_name AS employee_name`

type shiftRepositoryImpl struct {
	reg *tenant.Registry
}

func NewShiftRepository(reg *tenant.Registry) shift.Repository {
	return &shiftRepositoryImpl{reg: reg}
}

func (r *shiftRepositoryImpl) querier(ctx context.Context) (database.Querier, error) {
	db, err := r.reg.DB(ctx)
	if err != nil {
		return nil, err
	}
	return GetQuerier(ctx, db), nil
}

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	var startTime, endTime string
	var employeeName string

	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Day, &startTime, &endTime,
		&s.Wage, &s.Designation, &s.CreatedAt, &s.UpdatedAt,
		&employeeName,
	)
	if err != nil {
		return shift.Shift{}, err
	}

	if s.Start, err = shift.ParseTimeOfDay(startTime); err != nil {
		return shift.Shift{}, fmt.Errorf("corrupt start_time for shift %d: %w", s.ID, err)
	}
	if s.End, err = shift.ParseTimeOfDay(endTime); err != nil {
		return shift.Shift{}, fmt.Errorf("corrupt end_time for shift %d: %w", s.ID, err)
	}
	s.EmployeeName = &employeeName

	return s, nil
}

func collectShifts(rows pgx.Rows) ([]shift.Shift, error) {
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return shifts, nil
}

func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return shift.Shift{}, err
	}

	query := `
		INSERT INTO shifts (
			id, employee_id, day, start_time, end_time, wage, designation,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		s.ID, s.EmployeeID, s.Day, s.Start.Storage(), s.End.Storage(),
		s.Wage, s.Designation,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return shift.Shift{}, err
	}

	return s, nil
}

func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id int64) (shift.Shift, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return shift.Shift{}, err
	}

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts s
		JOIN employees e ON s.employee_id = e.id
		WHERE s.id = $1
	`

	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, err
	}
	return s, nil
}

func (r *shiftRepositoryImpl) GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) ([]shift.Shift, error) {
	return r.getByEmployeeAndDay(ctx, employeeID, day, false)
}

func (r *shiftRepositoryImpl) GetByEmployeeAndDayForUpdate(ctx context.Context, employeeID string, day time.Time) ([]shift.Shift, error) {
	return r.getByEmployeeAndDay(ctx, employeeID, day, true)
}

func (r *shiftRepositoryImpl) getByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time, forUpdate bool) ([]shift.Shift, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts s
		JOIN employees e ON s.employee_id = e.id
		WHERE s.employee_id = $1 AND s.day = $2
		ORDER BY s.start_time
	`
	if forUpdate {
		// Locks the shift rows only, not the joined employee row.
		query += " FOR UPDATE OF s"
	}

	rows, err := q.Query(ctx, query, employeeID, day)
	if err != nil {
		return nil, err
	}
	return collectShifts(rows)
}

func (r *shiftRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) ([]shift.Shift, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts s
		JOIN employees e ON s.employee_id = e.id
		WHERE s.employee_id = $1
		ORDER BY s.day, s.start_time
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	return collectShifts(rows)
}

func (r *shiftRepositoryImpl) GetByDay(ctx context.Context, day time.Time) ([]shift.Shift, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts s
		JOIN employees e ON s.employee_id = e.id
		WHERE s.day = $1
		ORDER BY e.last_name, e.first_name, s.start_time
	`

	rows, err := q.Query(ctx, query, day)
	if err != nil {
		return nil, err
	}
	return collectShifts(rows)
}

func (r *shiftRepositoryImpl) GetAll(ctx context.Context) ([]shift.Shift, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts s
		JOIN employees e ON s.employee_id = e.id
		ORDER BY s.day, e.last_name, e.first_name, s.start_time
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectShifts(rows)
}

func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE shifts
		SET start_time = $1, end_time = $2, wage = $3, designation = $4, updated_at = NOW()
		WHERE id = $5
	`

	commandTag, err := q.Exec(ctx, query, s.Start.Storage(), s.End.Storage(), s.Wage, s.Designation, s.ID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}
	return nil
}

func (r *shiftRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}

	commandTag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}
	return nil
}

func (r *shiftRepositoryImpl) DeleteByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, `DELETE FROM shifts WHERE employee_id = $1 AND day = $2`, employeeID, day)
	return err
}

func (r *shiftRepositoryImpl) IDExists(ctx context.Context, id int64) (bool, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	err = q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM shifts WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

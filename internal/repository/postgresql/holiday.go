package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tablerota/rota-backend-go/internal/domain/holiday"
	"github.com/tablerota/rota-backend-go/internal/pkg/database"
	"github.com/tablerota/rota-backend-go/internal/pkg/tenant"
)

const holidayColumns = `
	hr.id, hr.employee_id, hr.start_date, hr.end_date, hr.request_date,
	hr.days, hr.payment_type, hr.status, hr.decided_by, hr.decided_at,
	hr.notes, hr.created_at, hr.updated_at,
	e.first_name || ' ' || e.last_name AS employee_name`

type holidayRequestRepositoryImpl struct {
	reg *tenant.Registry
}

func NewHolidayRequestRepository(reg *tenant.Registry) holiday.RequestRepository {
	return &holidayRequestRepositoryImpl{reg: reg}
}

func (r *holidayRequestRepositoryImpl) querier(ctx context.Context) (database.Querier, error) {
	db, err := r.reg.DB(ctx)
	if err != nil {
		return nil, err
	}
	return GetQuerier(ctx, db), nil
}

func scanHolidayRequest(row pgx.Row) (holiday.Request, error) {
	var req holiday.Request
	var employeeName string

	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.StartDate, &req.EndDate, &req.RequestDate,
		&req.Days, &req.PaymentType, &req.Status, &req.DecidedBy, &req.DecidedAt,
		&req.Notes, &req.CreatedAt, &req.UpdatedAt,
		&employeeName,
	)
	if err != nil {
		return holiday.Request{}, err
	}

	req.EmployeeName = &employeeName
	return req, nil
}

func collectHolidayRequests(rows pgx.Rows) ([]holiday.Request, error) {
	defer rows.Close()

	var requests []holiday.Request
	for rows.Next() {
		req, err := scanHolidayRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return requests, nil
}

func (r *holidayRequestRepositoryImpl) Create(ctx context.Context, req holiday.Request) (holiday.Request, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return holiday.Request{}, err
	}

	query := `
		INSERT INTO holiday_requests (
			id, employee_id, start_date, end_date, request_date,
			days, payment_type, status, notes,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5, $6, $7, $8,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		req.EmployeeID, req.StartDate, req.EndDate, req.RequestDate,
		req.Days, req.PaymentType, req.Status, req.Notes,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return holiday.Request{}, err
	}

	return req, nil
}

func (r *holidayRequestRepositoryImpl) GetByID(ctx context.Context, id string) (holiday.Request, error) {
	return r.getByID(ctx, id, false)
}

func (r *holidayRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (holiday.Request, error) {
	return r.getByID(ctx, id, true)
}

func (r *holidayRequestRepositoryImpl) getByID(ctx context.Context, id string, forUpdate bool) (holiday.Request, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return holiday.Request{}, err
	}

	query := `
		SELECT ` + holidayColumns + `
		FROM holiday_requests hr
		JOIN employees e ON hr.employee_id = e.id
		WHERE hr.id = $1
	`
	if forUpdate {
		query += " FOR UPDATE OF hr"
	}

	req, err := scanHolidayRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return holiday.Request{}, holiday.ErrHolidayNotFound
		}
		return holiday.Request{}, err
	}
	return req, nil
}

func (r *holidayRequestRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) ([]holiday.Request, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + holidayColumns + `
		FROM holiday_requests hr
		JOIN employees e ON hr.employee_id = e.id
		WHERE hr.employee_id = $1
		ORDER BY hr.start_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	return collectHolidayRequests(rows)
}

func (r *holidayRequestRepositoryImpl) GetPending(ctx context.Context) ([]holiday.Request, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + holidayColumns + `
		FROM holiday_requests hr
		JOIN employees e ON hr.employee_id = e.id
		WHERE hr.status = $1
		ORDER BY hr.request_date
	`

	rows, err := q.Query(ctx, query, holiday.StatusPending)
	if err != nil {
		return nil, err
	}
	return collectHolidayRequests(rows)
}

func (r *holidayRequestRepositoryImpl) UpdateDecision(ctx context.Context, req holiday.Request) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE holiday_requests
		SET status = $1, decided_by = $2, decided_at = $3, notes = $4, updated_at = NOW()
		WHERE id = $5
	`

	commandTag, err := q.Exec(ctx, query, req.Status, req.DecidedBy, req.DecidedAt, req.Notes, req.ID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

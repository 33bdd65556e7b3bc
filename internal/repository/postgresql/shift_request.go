package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tablerota/rota-backend-go/internal/domain/shift"
	"github.com/tablerota/rota-backend-go/internal/pkg/database"
	"github.com/tablerota/rota-backend-go/internal/pkg/tenant"
)

const shiftRequestColumns = `
	sr.id, sr.employee_id, sr.day, sr.start_time::text, sr.end_time::text,
	sr.wage, sr.designation, sr.status, sr.accepted_by, sr.created_at, sr.updated_at,
	e.first_name || ' ' || e.last_name AS employee_name`

type shiftRequestRepositoryImpl struct {
	reg *tenant.Registry
}

func NewShiftRequestRepository(reg *tenant.Registry) shift.RequestRepository {
	return &shiftRequestRepositoryImpl{reg: reg}
}

func (r *shiftRequestRepositoryImpl) querier(ctx context.Context) (database.Querier, error) {
	db, err := r.reg.DB(ctx)
	if err != nil {
		return nil, err
	}
	return GetQuerier(ctx, db), nil
}

func scanShiftRequest(row pgx.Row) (shift.Request, error) {
	var req shift.Request
	var startTime, endTime string
	var employeeName string

	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Day, &startTime, &endTime,
		&req.Wage, &req.Designation, &req.Status, &req.AcceptedBy, &req.CreatedAt, &req.UpdatedAt,
		&employeeName,
	)
	if err != nil {
		return shift.Request{}, err
	}

	if req.Start, err = shift.ParseTimeOfDay(startTime); err != nil {
		return shift.Request{}, fmt.Errorf("corrupt start_time for shift request %d: %w", req.ID, err)
	}
	if req.End, err = shift.ParseTimeOfDay(endTime); err != nil {
		return shift.Request{}, fmt.Errorf("corrupt end_time for shift request %d: %w", req.ID, err)
	}
	req.EmployeeName = &employeeName

	return req, nil
}

func (r *shiftRequestRepositoryImpl) Create(ctx context.Context, req shift.Request) (shift.Request, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return shift.Request{}, err
	}

	query := `
		INSERT INTO shift_requests (
			id, employee_id, day, start_time, end_time, wage, designation,
			status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, req.Day, req.Start.Storage(), req.End.Storage(),
		req.Wage, req.Designation, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return shift.Request{}, err
	}

	return req, nil
}

func (r *shiftRequestRepositoryImpl) GetByID(ctx context.Context, id int64) (shift.Request, error) {
	return r.getByID(ctx, id, false)
}

func (r *shiftRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id int64) (shift.Request, error) {
	return r.getByID(ctx, id, true)
}

func (r *shiftRequestRepositoryImpl) getByID(ctx context.Context, id int64, forUpdate bool) (shift.Request, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return shift.Request{}, err
	}

	query := `
		SELECT ` + shiftRequestColumns + `
		FROM shift_requests sr
		JOIN employees e ON sr.employee_id = e.id
		WHERE sr.id = $1
	`
	if forUpdate {
		query += " FOR UPDATE OF sr"
	}

	req, err := scanShiftRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Request{}, shift.ErrShiftRequestNotFound
		}
		return shift.Request{}, err
	}
	return req, nil
}

func (r *shiftRequestRepositoryImpl) GetPending(ctx context.Context) ([]shift.Request, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + shiftRequestColumns + `
		FROM shift_requests sr
		JOIN employees e ON sr.employee_id = e.id
		WHERE sr.status = $1
		ORDER BY sr.day, sr.start_time
	`

	rows, err := q.Query(ctx, query, shift.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []shift.Request
	for rows.Next() {
		req, err := scanShiftRequest(rows)
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

func (r *shiftRequestRepositoryImpl) MarkAccepted(ctx context.Context, id int64, acceptedBy string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}

	commandTag, err := q.Exec(ctx, `
		UPDATE shift_requests
		SET status = $1, accepted_by = $2, updated_at = NOW()
		WHERE id = $3
	`, shift.RequestStatusAccepted, acceptedBy, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftRequestNotFound
	}
	return nil
}

func (r *shiftRequestRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}

	commandTag, err := q.Exec(ctx, `DELETE FROM shift_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftRequestNotFound
	}
	return nil
}

func (r *shiftRequestRepositoryImpl) IDExists(ctx context.Context, id int64) (bool, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	err = q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM shift_requests WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

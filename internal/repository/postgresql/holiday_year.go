package postgresql

import (
	"context"
	"fmt"

	"github.com/tablerota/rota-backend-go/internal/domain/holiday"
	"github.com/tablerota/rota-backend-go/internal/pkg/tenant"
)

type holidayYearRepositoryImpl struct {
	reg *tenant.Registry
}

func NewHolidayYearRepository(reg *tenant.Registry) holiday.YearRepository {
	return &holidayYearRepositoryImpl{reg: reg}
}

func (r *holidayYearRepositoryImpl) GetAll(ctx context.Context) ([]holiday.YearWindow, error) {
	db, err := r.reg.DB(ctx)
	if err != nil {
		return nil, err
	}
	q := GetQuerier(ctx, db)

	rows, err := q.Query(ctx, `
		SELECT id, start_date, end_date
		FROM holiday_years
		ORDER BY start_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []holiday.YearWindow
	for rows.Next() {
		var w holiday.YearWindow
		if err := rows.Scan(&w.ID, &w.StartDate, &w.EndDate); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return windows, nil
}

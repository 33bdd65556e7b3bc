package shift

import (
	"context"
	"time"
)

type Service interface {
	AddShift(ctx context.Context, req AddShiftRequest) (ShiftResponse, error)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) error
	DeleteShift(ctx context.Context, id int64) error
	ReplaceDayShifts(ctx context.Context, req ReplaceDayRequest) ([]ShiftResponse, error)

	TodayShifts(ctx context.Context) ([]ShiftResponse, error)
	RotaForEmployee(ctx context.Context, employeeID string) ([]ShiftResponse, error)
	ConfirmedRotaForDay(ctx context.Context, day time.Time) ([]ShiftResponse, error)
	AllRota(ctx context.Context) ([]ShiftResponse, error)

	RequestShift(ctx context.Context, req AddShiftRequest) (RequestResponse, error)
	PendingRequests(ctx context.Context) ([]RequestResponse, error)
	AcceptShiftRequest(ctx context.Context, id int64, actorName string) error
	DeclineShiftRequest(ctx context.Context, id int64) error
}

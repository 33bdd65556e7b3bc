package holiday

import (
	"context"
)

type Service interface {
	RequestHoliday(ctx context.Context, req CreateHolidayRequest) (RequestResponse, error)
	PendingRequests(ctx context.Context) ([]RequestResponse, error)
	DecideRequest(ctx context.Context, req DecideHolidayRequest, actorName string) error
	ComputeYears(ctx context.Context, employeeID string) (YearsResponse, error)
}

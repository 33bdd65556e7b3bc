package holiday

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the decision state of a holiday request. The legacy schema
// folded decision and payment type into one string field; they are modeled
// independently here.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
)

// PaymentType says whether the leave consumes the paid allowance.
type PaymentType string

const (
	PaymentPaid   PaymentType = "paid"
	PaymentUnpaid PaymentType = "unpaid"
)

// Request is one holiday request. Once DecidedBy is set the decision is
// final; requests are never deleted.
type Request struct {
	ID          string
	EmployeeID  string
	StartDate   time.Time // inclusive
	EndDate     time.Time // inclusive
	RequestDate time.Time
	Days        int
	PaymentType PaymentType
	Status      Status
	DecidedBy   *string
	DecidedAt   *time.Time
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined for responses
	EmployeeName *string
}

func (r Request) Decided() bool {
	return r.DecidedBy != nil && *r.DecidedBy != ""
}

// YearWindow is one tenant-configured fiscal holiday year, inclusive on
// both ends. Windows never overlap and need not align to calendar years.
type YearWindow struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
}

// Contains reports whether the date falls inside the window, comparing at
// day granularity.
func (w YearWindow) Contains(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(w.StartDate.Truncate(24*time.Hour)) && !d.After(w.EndDate.Truncate(24*time.Hour))
}

// YearBucket is the derived per-window aggregate for one employee. It is
// never persisted.
type YearBucket struct {
	Window YearWindow

	AllowanceDays     decimal.Decimal
	AccruedDays       decimal.Decimal
	TakenPaidDays     decimal.Decimal
	TakenUnpaidDays   decimal.Decimal
	PendingPaidDays   decimal.Decimal
	PendingUnpaidDays decimal.Decimal
	DeclinedDays      decimal.Decimal

	RemainingYearDays decimal.Decimal
	AvailableNowDays  decimal.Decimal

	Approved []Request
	Pending  []Request
	Declined []Request
}

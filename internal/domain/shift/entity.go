package shift

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxShiftsPerDay caps how many shifts one employee may hold on a single
// calendar day.
const MaxShiftsPerDay = 2

// Shift is one confirmed rota entry. Wage and designation are denormalized
// copies from the employee record at time of save.
type Shift struct {
	ID          int64 // 16-digit, unique across shifts and shift_requests
	EmployeeID  string
	Day         time.Time // date only, midnight UTC
	Start       TimeOfDay
	End         TimeOfDay
	Wage        decimal.Decimal
	Designation string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined for responses
	EmployeeName *string
}

func (s Shift) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
)

// Request is a proposed shift awaiting approver acceptance. Its id is drawn
// from the same 16-digit space as confirmed shifts.
type Request struct {
	ID          int64
	EmployeeID  string
	Day         time.Time
	Start       TimeOfDay
	End         TimeOfDay
	Wage        decimal.Decimal
	Designation string
	Status      RequestStatus
	AcceptedBy  *string // approver email, set on acceptance
	CreatedAt   time.Time
	UpdatedAt   time.Time

	EmployeeName *string
}

func (r Request) Interval() Interval {
	return Interval{Start: r.Start, End: r.End}
}

// Shift converts an accepted request into the rota entry it becomes.
func (r Request) Shift() Shift {
	return Shift{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		Day:         r.Day,
		Start:       r.Start,
		End:         r.End,
		Wage:        r.Wage,
		Designation: r.Designation,
	}
}

package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a tenant staff record. Shifts and holidays reference the
// stable id; the (first name, last name) pair survives only as a display
// value and for legacy data ingestion.
type Employee struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	Wage          decimal.Decimal
	Designation   string
	AllowanceDays decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

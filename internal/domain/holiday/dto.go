package holiday

import (
	"github.com/shopspring/decimal"
	"github.com/tablerota/rota-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	EmployeeID  string `json:"employee_id"`
	StartDate   string `json:"startDate"` // dd/mm/yyyy, optional weekday label
	EndDate     string `json:"endDate"`
	Days        int    `json:"days"`
	PaymentType string `json:"payment_type"` // paid | unpaid, defaults to paid
	Notes       string `json:"notes"`
}

func (r CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "Employee ID is required"})
	}
	start, err := validator.ParseRotaDate(r.StartDate)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "startDate", Message: "Invalid date, use dd/mm/yyyy"})
	}
	end, err := validator.ParseRotaDate(r.EndDate)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "endDate", Message: "Invalid date, use dd/mm/yyyy"})
	} else if !start.IsZero() && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "endDate", Message: "End date must not precede start date"})
	}
	if r.Days <= 0 {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "Days must be positive"})
	}
	if r.PaymentType != "" && r.PaymentType != string(PaymentPaid) && r.PaymentType != string(PaymentUnpaid) {
		errs = append(errs, validator.ValidationError{Field: "payment_type", Message: "Payment type must be paid or unpaid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideHolidayRequest struct {
	RequestID string `json:"request_id"`
	Decision  string `json:"decision"` // approve | decline
	Reason    string `json:"reason"`   // overwrites notes on decline
}

func (r DecideHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{Field: "request_id", Message: "Request ID is required"})
	}
	if r.Decision != "approve" && r.Decision != "decline" {
		errs = append(errs, validator.ValidationError{Field: "decision", Message: "Decision must be approve or decline"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestResponse struct {
	ID           string      `json:"id"`
	EmployeeID   string      `json:"employee_id"`
	EmployeeName string      `json:"employee_name,omitempty"`
	StartDate    string      `json:"startDate"`
	EndDate      string      `json:"endDate"`
	RequestDate  string      `json:"requestDate"`
	Days         int         `json:"days"`
	PaymentType  PaymentType `json:"payment_type"`
	Status       Status      `json:"status"`
	DecidedBy    *string     `json:"decided_by,omitempty"`
	Notes        *string     `json:"notes,omitempty"`
}

func NewRequestResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		StartDate:   validator.FormatRotaDate(r.StartDate),
		EndDate:     validator.FormatRotaDate(r.EndDate),
		RequestDate: validator.FormatRotaDate(r.RequestDate),
		Days:        r.Days,
		PaymentType: r.PaymentType,
		Status:      r.Status,
		DecidedBy:   r.DecidedBy,
		Notes:       r.Notes,
	}
	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	}
	return resp
}

func NewRequestResponses(requests []Request) []RequestResponse {
	resps := make([]RequestResponse, 0, len(requests))
	for _, r := range requests {
		resps = append(resps, NewRequestResponse(r))
	}
	return resps
}

// YearResponse is one fiscal-window bucket in the years aggregate.
type YearResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	AllowanceDays     decimal.Decimal `json:"allowance_days"`
	AccruedDays       decimal.Decimal `json:"accrued_days"`
	TakenPaidDays     decimal.Decimal `json:"taken_paid_days"`
	TakenUnpaidDays   decimal.Decimal `json:"taken_unpaid_days"`
	PendingPaidDays   decimal.Decimal `json:"pending_paid_days"`
	PendingUnpaidDays decimal.Decimal `json:"pending_unpaid_days"`
	DeclinedDays      decimal.Decimal `json:"declined_days"`
	RemainingYearDays decimal.Decimal `json:"remaining_year_days"`
	AvailableNowDays  decimal.Decimal `json:"available_now_days"`

	Approved []RequestResponse `json:"approved"`
	Pending  []RequestResponse `json:"pending"`
	Declined []RequestResponse `json:"declined"`
}

type YearsResponse struct {
	EmployeeID   string         `json:"employee_id"`
	EmployeeName string         `json:"employee_name"`
	CurrentYear  string         `json:"current_year,omitempty"` // startDate key of the window containing today
	Years        []YearResponse `json:"years"`
}

func NewYearResponse(b YearBucket) YearResponse {
	return YearResponse{
		StartDate:         validator.FormatRotaDate(b.Window.StartDate),
		EndDate:           validator.FormatRotaDate(b.Window.EndDate),
		AllowanceDays:     b.AllowanceDays.Round(1),
		AccruedDays:       b.AccruedDays.Round(1),
		TakenPaidDays:     b.TakenPaidDays.Round(1),
		TakenUnpaidDays:   b.TakenUnpaidDays.Round(1),
		PendingPaidDays:   b.PendingPaidDays.Round(1),
		PendingUnpaidDays: b.PendingUnpaidDays.Round(1),
		DeclinedDays:      b.DeclinedDays.Round(1),
		RemainingYearDays: b.RemainingYearDays.Round(1),
		AvailableNowDays:  b.AvailableNowDays.Round(1),
		Approved:          NewRequestResponses(b.Approved),
		Pending:           NewRequestResponses(b.Pending),
		Declined:          NewRequestResponses(b.Declined),
	}
}

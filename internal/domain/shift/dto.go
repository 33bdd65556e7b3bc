package shift

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/tablerota/rota-backend-go/internal/pkg/validator"
)

type AddShiftRequest struct {
	EmployeeID string `json:"employee_id"`
	Day        string `json:"day"`       // dd/mm/yyyy, optional weekday label
	StartTime  string `json:"startTime"` // HH:mm
	EndTime    string `json:"endTime"`   // HH:mm
}

func (r AddShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "Employee ID is required"})
	}
	if _, err := validator.ParseRotaDate(r.Day); err != nil {
		errs = append(errs, validator.ValidationError{Field: "day", Message: "Invalid day, use dd/mm/yyyy"})
	}
	if _, err := ParseTimeOfDay(r.StartTime); err != nil {
		errs = append(errs, validator.ValidationError{Field: "startTime", Message: "Invalid time, use HH:mm"})
	}
	if _, err := ParseTimeOfDay(r.EndTime); err != nil {
		errs = append(errs, validator.ValidationError{Field: "endTime", Message: "Invalid time, use HH:mm"})
	}
	if r.StartTime == r.EndTime {
		errs = append(errs, validator.ValidationError{Field: "endTime", Message: "Shift must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	ID        int64  `json:"-"` // from URL
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (r UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID == 0 {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "Shift ID is required"})
	}
	if _, err := ParseTimeOfDay(r.StartTime); err != nil {
		errs = append(errs, validator.ValidationError{Field: "startTime", Message: "Invalid time, use HH:mm"})
	}
	if _, err := ParseTimeOfDay(r.EndTime); err != nil {
		errs = append(errs, validator.ValidationError{Field: "endTime", Message: "Invalid time, use HH:mm"})
	}
	if r.StartTime == r.EndTime {
		errs = append(errs, validator.ValidationError{Field: "endTime", Message: "Shift must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReplaceDayRequest atomically replaces every shift one employee holds on
// one day with the given set.
type ReplaceDayRequest struct {
	EmployeeID string         `json:"employee_id"`
	Day        string         `json:"day"`
	Shifts     []IntervalBody `json:"shifts"`
}

type IntervalBody struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (r ReplaceDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "Employee ID is required"})
	}
	if _, err := validator.ParseRotaDate(r.Day); err != nil {
		errs = append(errs, validator.ValidationError{Field: "day", Message: "Invalid day, use dd/mm/yyyy"})
	}
	if len(r.Shifts) == 0 {
		errs = append(errs, validator.ValidationError{Field: "shifts", Message: "At least one shift is required"})
	}
	if len(r.Shifts) > MaxShiftsPerDay {
		errs = append(errs, validator.ValidationError{Field: "shifts", Message: "At most 2 shifts per day"})
	}
	for i, iv := range r.Shifts {
		if _, err := ParseInterval(iv.StartTime, iv.EndTime); err != nil {
			errs = append(errs, validator.ValidationError{Field: "shifts[" + strconv.Itoa(i) + "]", Message: "Invalid time, use HH:mm"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ShiftResponse is the wire form of a rota entry. The id is emitted as a
// string because 16-digit values overflow JSON number precision in browsers.
type ShiftResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	Day          string          `json:"day"`
	StartTime    string          `json:"startTime"`
	EndTime      string          `json:"endTime"`
	Wage         decimal.Decimal `json:"wage"`
	Designation  string          `json:"designation"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:          strconv.FormatInt(s.ID, 10),
		EmployeeID:  s.EmployeeID,
		Day:         validator.FormatRotaDate(s.Day),
		StartTime:   s.Start.String(),
		EndTime:     s.End.String(),
		Wage:        s.Wage,
		Designation: s.Designation,
	}
	if s.EmployeeName != nil {
		resp.EmployeeName = *s.EmployeeName
	}
	return resp
}

func NewShiftResponses(shifts []Shift) []ShiftResponse {
	resps := make([]ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		resps = append(resps, NewShiftResponse(s))
	}
	return resps
}

type RequestResponse struct {
	ShiftResponse
	Status RequestStatus `json:"status"`
}

func NewRequestResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ShiftResponse: ShiftResponse{
			ID:          strconv.FormatInt(r.ID, 10),
			EmployeeID:  r.EmployeeID,
			Day:         validator.FormatRotaDate(r.Day),
			StartTime:   r.Start.String(),
			EndTime:     r.End.String(),
			Wage:        r.Wage,
			Designation: r.Designation,
		},
		Status: r.Status,
	}
	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	}
	return resp
}

package employee

import (
	"github.com/shopspring/decimal"
)

type Response struct {
	ID            string          `json:"id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Email         string          `json:"email"`
	Wage          decimal.Decimal `json:"wage"`
	Designation   string          `json:"designation"`
	AllowanceDays decimal.Decimal `json:"allowance_days"`
}

func NewResponse(e Employee) Response {
	return Response{
		ID:            e.ID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Wage:          e.Wage,
		Designation:   e.Designation,
		AllowanceDays: e.AllowanceDays,
	}
}

func NewResponses(employees []Employee) []Response {
	resps := make([]Response, 0, len(employees))
	for _, e := range employees {
		resps = append(resps, NewResponse(e))
	}
	return resps
}

package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tablerota/rota-backend-go/internal/domain/holiday"
	"github.com/tablerota/rota-backend-go/internal/handler/http/response"
)

type HolidayHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Years(w http.ResponseWriter, r *http.Request)
}

type HolidayHandlerImpl struct {
	holidayService holiday.Service
}

func NewHolidayHandler(holidayService holiday.Service) HolidayHandler {
	return &HolidayHandlerImpl{holidayService: holidayService}
}

// Request implements HolidayHandler. Employees may only file for
// themselves; approvers may file on anyone's behalf.
func (h *HolidayHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	if !claims.Level.IsApprover() && req.EmployeeID != claims.EmployeeID {
		response.Forbidden(w, "Cannot request holiday for another employee")
		return
	}

	created, err := h.holidayService.RequestHoliday(r.Context(), req)
	if err != nil {
		slog.Error("Request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday requested", created)
}

// Pending implements HolidayHandler.
func (h *HolidayHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.holidayService.PendingRequests(r.Context())
	if err != nil {
		slog.Error("Pending service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// Decide implements HolidayHandler.
func (h *HolidayHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req holiday.DecideHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Decide decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.holidayService.DecideRequest(r.Context(), req, claims.Email); err != nil {
		slog.Error("Decide service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday request decided", nil)
}

// Years implements HolidayHandler. Employees may only read their own
// aggregate; approvers may read anyone's.
func (h *HolidayHandlerImpl) Years(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	if !claims.Level.IsApprover() && employeeID != claims.EmployeeID {
		response.Forbidden(w, "Cannot view another employee's holidays")
		return
	}

	years, err := h.holidayService.ComputeYears(r.Context(), employeeID)
	if err != nil {
		slog.Error("Years service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, years)
}

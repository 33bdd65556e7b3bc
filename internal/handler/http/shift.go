package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tablerota/rota-backend-go/internal/domain/shift"
	"github.com/tablerota/rota-backend-go/internal/handler/http/response"
	"github.com/tablerota/rota-backend-go/internal/pkg/validator"
)

type ShiftHandler interface {
	SaveDay(w http.ResponseWriter, r *http.Request)
	AddAnother(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	RotaForEmployee(w http.ResponseWriter, r *http.Request)
	ConfirmedRota(w http.ResponseWriter, r *http.Request)
	AllRota(w http.ResponseWriter, r *http.Request)
	RequestShift(w http.ResponseWriter, r *http.Request)
	PendingRequests(w http.ResponseWriter, r *http.Request)
	AcceptRequest(w http.ResponseWriter, r *http.Request)
	DeclineRequest(w http.ResponseWriter, r *http.Request)
}

type ShiftHandlerImpl struct {
	shiftService shift.Service
}

func NewShiftHandler(shiftService shift.Service) ShiftHandler {
	return &ShiftHandlerImpl{shiftService: shiftService}
}

// SaveDay implements ShiftHandler. It replaces the employee's whole shift
// set for the day.
func (h *ShiftHandlerImpl) SaveDay(w http.ResponseWriter, r *http.Request) {
	var req shift.ReplaceDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SaveDay decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	shifts, err := h.shiftService.ReplaceDayShifts(r.Context(), req)
	if err != nil {
		slog.Error("SaveDay service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shifts saved", shifts)
}

// AddAnother implements ShiftHandler. It adds one shift on top of whatever
// the employee already holds that day.
func (h *ShiftHandlerImpl) AddAnother(w http.ResponseWriter, r *http.Request) {
	var req shift.AddShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddAnother decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.shiftService.AddShift(r.Context(), req)
	if err != nil {
		slog.Error("AddAnother service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift added", created)
}

// Update implements ShiftHandler.
func (h *ShiftHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := shiftIDParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid shift id", nil)
		return
	}

	var req shift.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := h.shiftService.UpdateShift(r.Context(), req); err != nil {
		slog.Error("Update service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated", nil)
}

// Delete implements ShiftHandler.
func (h *ShiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := shiftIDParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid shift id", nil)
		return
	}

	if err := h.shiftService.DeleteShift(r.Context(), id); err != nil {
		slog.Error("Delete service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted", nil)
}

// Today implements ShiftHandler.
func (h *ShiftHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shiftService.TodayShifts(r.Context())
	if err != nil {
		slog.Error("Today service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, shifts)
}

// RotaForEmployee implements ShiftHandler.
func (h *ShiftHandlerImpl) RotaForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	shifts, err := h.shiftService.RotaForEmployee(r.Context(), employeeID)
	if err != nil {
		slog.Error("RotaForEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, shifts)
}

// ConfirmedRota implements ShiftHandler. The day comes from the ?day= query
// in dd/mm/yyyy form.
func (h *ShiftHandlerImpl) ConfirmedRota(w http.ResponseWriter, r *http.Request) {
	day, err := validator.ParseRotaDate(r.URL.Query().Get("day"))
	if err != nil {
		response.BadRequest(w, "Invalid day, use dd/mm/yyyy", nil)
		return
	}

	shifts, err := h.shiftService.ConfirmedRotaForDay(r.Context(), day)
	if err != nil {
		slog.Error("ConfirmedRota service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, shifts)
}

// AllRota implements ShiftHandler.
func (h *ShiftHandlerImpl) AllRota(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shiftService.AllRota(r.Context())
	if err != nil {
		slog.Error("AllRota service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, shifts)
}

// RequestShift implements ShiftHandler. Employees may only request shifts
// for themselves; approvers may file on anyone's behalf.
func (h *ShiftHandlerImpl) RequestShift(w http.ResponseWriter, r *http.Request) {
	var req shift.AddShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RequestShift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	if !claims.Level.IsApprover() && req.EmployeeID != claims.EmployeeID {
		response.Forbidden(w, "Cannot request a shift for another employee")
		return
	}

	created, err := h.shiftService.RequestShift(r.Context(), req)
	if err != nil {
		slog.Error("RequestShift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift requested", created)
}

// PendingRequests implements ShiftHandler.
func (h *ShiftHandlerImpl) PendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.shiftService.PendingRequests(r.Context())
	if err != nil {
		slog.Error("PendingRequests service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// AcceptRequest implements ShiftHandler.
func (h *ShiftHandlerImpl) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	id, err := shiftIDParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid shift request id", nil)
		return
	}

	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.shiftService.AcceptShiftRequest(r.Context(), id, claims.Email); err != nil {
		slog.Error("AcceptRequest service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift request accepted", nil)
}

// DeclineRequest implements ShiftHandler.
func (h *ShiftHandlerImpl) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	id, err := shiftIDParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid shift request id", nil)
		return
	}

	if err := h.shiftService.DeclineShiftRequest(r.Context(), id); err != nil {
		slog.Error("DeclineRequest service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift request declined", nil)
}

func shiftIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

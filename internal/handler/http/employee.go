package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tablerota/rota-backend-go/internal/domain/employee"
	"github.com/tablerota/rota-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.Service
}

func NewEmployeeHandler(employeeService employee.Service) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// List implements EmployeeHandler. An optional ?q= filters by name or
// designation.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.SearchEmployees(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		slog.Error("List service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, employees)
}

// GetByID implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	emp, err := h.employeeService.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("GetByID service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, emp)
}

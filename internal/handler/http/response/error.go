package response

import (
	"errors"
	"net/http"

	"github.com/tablerota/rota-backend-go/internal/domain/account"
	"github.com/tablerota/rota-backend-go/internal/domain/auth"
	"github.com/tablerota/rota-backend-go/internal/domain/employee"
	"github.com/tablerota/rota-backend-go/internal/domain/holiday"
	"github.com/tablerota/rota-backend-go/internal/domain/notification"
	"github.com/tablerota/rota-backend-go/internal/domain/shift"
	"github.com/tablerota/rota-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, account.ErrAccountNotFound):
		NotFound(w, "Account not found")
	case errors.Is(err, account.ErrApproverAccessRequired):
		Forbidden(w, err.Error())

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftRequestNotFound):
		NotFound(w, "Shift request not found")
	case errors.Is(err, shift.ErrShiftOverlap):
		Conflict(w, "Shift overlaps an existing shift")
	case errors.Is(err, shift.ErrMaxShiftsReached):
		Conflict(w, "Employee already has the maximum number of shifts for that day")
	case errors.Is(err, shift.ErrShiftRequestProcessed):
		Conflict(w, "Shift request already processed")
	case errors.Is(err, shift.ErrInvalidTime),
		errors.Is(err, shift.ErrInvalidDay):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, shift.ErrIDAllocation):
		InternalServerError(w, "ID_ALLOCATION", "Could not allocate a shift id")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday request not found")
	case errors.Is(err, holiday.ErrAlreadyDecided):
		Conflict(w, "Holiday request already decided")
	case errors.Is(err, holiday.ErrInvalidDecision):
		BadRequest(w, err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	default:
		InternalServerError(w, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
	}
}

package shift

import "errors"

var (
	ErrShiftNotFound    = errors.New("shift not found")
	ErrShiftOverlap     = errors.New("shift overlaps an existing shift")
	ErrMaxShiftsReached = errors.New("maximum shifts per day reached")
	ErrInvalidTime      = errors.New("invalid time, use HH:mm")
	ErrInvalidDay       = errors.New("invalid day, use dd/mm/yyyy")

	// Shift request errors
	ErrShiftRequestNotFound  = errors.New("shift request not found")
	ErrShiftRequestProcessed = errors.New("shift request already processed")

	// Id allocation
	ErrIDAllocation = errors.New("shift id allocation exhausted")
)

package holiday

import "errors"

var (
	ErrHolidayNotFound = errors.New("holiday request not found")
	ErrAlreadyDecided  = errors.New("holiday request already decided")
	ErrInvalidDecision = errors.New("decision must be approve or decline")
)

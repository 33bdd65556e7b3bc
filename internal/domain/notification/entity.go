package notification

import (
	"time"

	"github.com/tablerota/rota-backend-go/internal/domain/account"
)

// Type represents the type of notification
type Type string

const (
	TypeHolidayRequested Type = "holiday_requested"
	TypeHolidayApproved  Type = "holiday_approved"
	TypeHolidayDeclined  Type = "holiday_declined"
	TypeShiftSaved       Type = "shift_saved"
	TypeShiftRequested   Type = "shift_requested"
	TypeShiftAccepted    Type = "shift_request_accepted"
	TypeShiftDeclined    Type = "shift_request_declined"
	TypeRotaUpdated      Type = "rota_updated"
)

// Notification is a fire-and-forget record. Either RecipientID targets one
// employee or TargetLevel fans out to every account at that level.
type Notification struct {
	ID          string
	Tenant      string
	RecipientID *string
	TargetLevel *account.Level
	Type        Type
	Title       string
	Message     string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}

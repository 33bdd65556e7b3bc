package notification

import (
	"time"

	"github.com/tablerota/rota-backend-go/internal/domain/account"
)

// CreateRequest enqueues one notification for background persistence.
type CreateRequest struct {
	Tenant      string
	RecipientID *string
	TargetLevel *account.Level
	Type        Type
	Title       string
	Message     string
}

type Response struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func NewResponse(n Notification) Response {
	return Response{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func NewResponses(notifications []Notification) []Response {
	resps := make([]Response, 0, len(notifications))
	for _, n := range notifications {
		resps = append(resps, NewResponse(n))
	}
	return resps
}

package notification

import (
	"context"
)

// Service delivers notifications without blocking the caller. Notify never
// returns an error: delivery is best effort.
type Service interface {
	Notify(req CreateRequest)
	ListForRecipient(ctx context.Context, recipientID string, level string) ([]Response, error)
	MarkRead(ctx context.Context, id string, recipientID string) error
	Shutdown()
}

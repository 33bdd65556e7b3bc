package notification

import (
	"context"
)

// Repository - interface for the notifications table
type Repository interface {
	CreateBatch(ctx context.Context, notifications []Notification) error
	GetByRecipient(ctx context.Context, recipientID string, level string) ([]Notification, error)
	MarkRead(ctx context.Context, id string, recipientID string) error
}

package postgresql

import (
	"context"
	"fmt"

	"github.com/tablerota/rota-backend-go/internal/domain/notification"
	"github.com/tablerota/rota-backend-go/internal/pkg/tenant"
)

type notificationRepositoryImpl struct {
	reg *tenant.Registry
}

func NewNotificationRepository(reg *tenant.Registry) notification.Repository {
	return &notificationRepositoryImpl{reg: reg}
}

func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, notifications []notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	// Batches arrive grouped per tenant from the worker; the tenant slug on
	// the first record selects the pool.
	db, err := r.reg.Open(notifications[0].Tenant)
	if err != nil {
		return err
	}
	q := GetQuerier(ctx, db)

	query := `
		INSERT INTO notifications (
			id, recipient_id, target_level, type, title, message, is_read, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, false, NOW())
	`

	for _, n := range notifications {
		if _, err := q.Exec(ctx, query,
			n.ID, n.RecipientID, n.TargetLevel, n.Type, n.Title, n.Message,
		); err != nil {
			return fmt.Errorf("insert notification %s: %w", n.ID, err)
		}
	}
	return nil
}

func (r *notificationRepositoryImpl) GetByRecipient(ctx context.Context, recipientID string, level string) ([]notification.Notification, error) {
	db, err := r.reg.DB(ctx)
	if err != nil {
		return nil, err
	}
	q := GetQuerier(ctx, db)

	rows, err := q.Query(ctx, `
		SELECT id, recipient_id, target_level, type, title, message, is_read, read_at, created_at
		FROM notifications
		WHERE recipient_id = $1 OR target_level = $2
		ORDER BY created_at DESC
		LIMIT 100
	`, recipientID, level)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.TargetLevel, &n.Type, &n.Title, &n.Message,
			&n.IsRead, &n.ReadAt, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, id string, recipientID string) error {
	db, err := r.reg.DB(ctx)
	if err != nil {
		return err
	}
	q := GetQuerier(ctx, db)

	commandTag, err := q.Exec(ctx, `
		UPDATE notifications
		SET is_read = true, read_at = NOW()
		WHERE id = $1 AND (recipient_id = $2 OR recipient_id IS NULL)
	`, id, recipientID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

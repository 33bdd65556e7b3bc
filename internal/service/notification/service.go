package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tablerota/rota-backend-go/internal/domain/notification"
	"github.com/tablerota/rota-backend-go/internal/pkg/sse"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo   notification.Repository
	hub    *sse.Hub
	config Config

	queue  chan notification.CreateRequest
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService creates a notification service with background
// workers that persist queued notifications in batches.
func NewNotificationService(repo notification.Repository, hub *sse.Hub, cfg Config) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		hub:    hub,
		config: cfg,
		queue:  make(chan notification.CreateRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started",
		"workers", cfg.WorkerCount, "batch_size", cfg.BatchSize, "flush_interval", cfg.FlushInterval)

	return s
}

// Notify implements notification.Service. Delivery is best effort: when the
// queue is full the notification is dropped rather than blocking the
// request path.
func (s *service) Notify(req notification.CreateRequest) {
	select {
	case s.queue <- req:
	default:
		slog.Warn("notification queue full, dropping", "type", req.Type, "tenant", req.Tenant)
	}
}

// ListForRecipient implements notification.Service.
func (s *service) ListForRecipient(ctx context.Context, recipientID string, level string) ([]notification.Response, error) {
	notifications, err := s.repo.GetByRecipient(ctx, recipientID, level)
	if err != nil {
		return nil, err
	}
	return notification.NewResponses(notifications), nil
}

// MarkRead implements notification.Service.
func (s *service) MarkRead(ctx context.Context, id string, recipientID string) error {
	return s.repo.MarkRead(ctx, id, recipientID)
}

// Shutdown stops the workers after a final flush of whatever is queued.
func (s *service) Shutdown() {
	close(s.stopCh)
	s.wg.Wait()
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				s.flush(id, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			s.flush(id, batch)
			batch = batch[:0]
		case <-s.stopCh:
			s.flush(id, batch)
			return
		}
	}
}

// flush persists one batch, grouping by tenant because each tenant has its
// own database, then pushes the stored notifications to SSE subscribers.
func (s *service) flush(workerID int, batch []notification.CreateRequest) {
	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	byTenant := make(map[string][]notification.Notification)
	for _, req := range batch {
		byTenant[req.Tenant] = append(byTenant[req.Tenant], notification.Notification{
			ID:          uuid.New().String(),
			Tenant:      req.Tenant,
			RecipientID: req.RecipientID,
			TargetLevel: req.TargetLevel,
			Type:        req.Type,
			Title:       req.Title,
			Message:     req.Message,
			IsRead:      false,
			CreatedAt:   time.Now().UTC(),
		})
	}

	for slug, notifications := range byTenant {
		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			slog.Error("notification batch insert failed",
				"worker", workerID, "tenant", slug, "count", len(notifications), "error", err)
			continue
		}

		for _, n := range notifications {
			if n.RecipientID == nil {
				continue
			}
			s.hub.Publish(*n.RecipientID, sse.Event{
				RecipientID: *n.RecipientID,
				Event:       "notification",
				Data:        notification.NewResponse(n),
			})
		}
	}
}

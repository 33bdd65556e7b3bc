package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tablerota/rota-backend-go/internal/domain/notification"
	"github.com/tablerota/rota-backend-go/internal/handler/http/response"
	"github.com/tablerota/rota-backend-go/internal/pkg/sse"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService notification.Service
	hub                 *sse.Hub
}

func NewNotificationHandler(notificationService notification.Service, hub *sse.Hub) NotificationHandler {
	return &NotificationHandlerImpl{
		notificationService: notificationService,
		hub:                 hub,
	}
}

// List implements NotificationHandler. It returns notifications addressed
// to the caller directly plus those fanned out to the caller's level.
func (h *NotificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	notifications, err := h.notificationService.ListForRecipient(r.Context(), claims.EmployeeID, string(claims.Level))
	if err != nil {
		slog.Error("List service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, notifications)
}

// MarkRead implements NotificationHandler.
func (h *NotificationHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.notificationService.MarkRead(r.Context(), id, claims.EmployeeID); err != nil {
		slog.Error("MarkRead service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

// Stream implements NotificationHandler. It holds the connection open and
// pushes notifications as server-sent events until the client disconnects.
func (h *NotificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "STREAMING_UNSUPPORTED", "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cleanup := h.hub.Subscribe(claims.EmployeeID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Stream marshal error", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, payload)
			flusher.Flush()
		}
	}
}

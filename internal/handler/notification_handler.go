package handler

import (
	"net/http"

	"beast-tins/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// NotificationHandler serves the admin notification feed: the polling
// endpoints plus a websocket stream of new events.
type NotificationHandler struct {
	service  service.NotificationService
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(service service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		upgrader: websocket.Upgrader{
			// Admin routes are already API-key guarded; the origin check
			// adds nothing here.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With().Str("handler", "notification").Logger(),
	}
}

// List handles GET /api/admin/notifications requests.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve notifications", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// MarkRead handles POST /api/admin/notifications/{id}/read requests.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification ID format", h.logger)
		return
	}

	if err := h.service.MarkRead(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to mark notification read", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles POST /api/admin/notifications/read-all requests.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkAllRead(r.Context()); err != nil {
		writeServiceError(w, err, "failed to mark notifications read", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stream handles GET /api/admin/notifications/stream requests by
// upgrading to a websocket and pushing each new notification as JSON.
// The connection closes when the client goes away or the server shuts
// down; clients are expected to fall back to polling on disconnect.
func (h *NotificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	events, cancel := h.service.Subscribe()
	defer cancel()

	// Reader goroutine: we never expect client messages, but reading is
	// required to observe the close frame.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case n := <-events:
			if err := conn.WriteJSON(n); err != nil {
				h.logger.Debug().Err(err).Msg("notification stream write failed, closing")
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

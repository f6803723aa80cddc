package rest

import (
	"net/http"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/adapters/notifier"
	"github.com/amggit2025/amg-realestate-sub000/internal/constants"
	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
)

const keepAliveInterval = 15 * time.Second

// EventsHandler streams the admin feed over server-sent events.
type EventsHandler struct {
	notifier  *notifier.SSENotifier
	keepAlive time.Duration
}

func NewEventsHandler(n *notifier.SSENotifier) *EventsHandler {
	return &EventsHandler{notifier: n, keepAlive: keepAliveInterval}
}

func (h *EventsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubscribeToFeed"})

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.Error("Streaming unsupported by response writer", nil, nil)
		WriteJSONError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	clientChan := h.notifier.AddClient(constants.AdminFeed)
	defer h.notifier.RemoveClient(constants.AdminFeed, clientChan)

	w.Write(notifier.FormatSSE(constants.SSEEventConnected, []byte("{}")))
	flusher.Flush()
	logger.Info("Admin subscribed to feed", nil)

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			logger.Info("Admin unsubscribed from feed", nil)
			return
		case <-h.notifier.Done():
			return
		case frame := <-clientChan:
			if _, err := w.Write(frame); err != nil {
				logger.Warn("Failed to write event", port.Fields{"error": err.Error()})
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := w.Write([]byte(": keep-alive\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

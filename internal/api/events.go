package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/starford/dagaz/internal/journal"
)

// EventsHandler streams store change notifications over Server-Sent
// Events. Each event carries the full resulting collection, so a client
// connecting mid-session receives the current state first (replay) and
// then every subsequent snapshot in mutation order.
type EventsHandler struct {
	store *journal.Store
}

// NewEventsHandler creates the SSE endpoint handler.
func NewEventsHandler(store *journal.Store) *EventsHandler {
	return &EventsHandler{store: store}
}

// ServeHTTP is the SSE endpoint handler (GET /api/events).
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	entriesCh := h.store.SubscribeEntries()
	defer h.store.UnsubscribeEntries(entriesCh)
	tagsCh := h.store.SubscribeTags()
	defer h.store.UnsubscribeTags(tagsCh)
	settingsCh := h.store.SubscribeSettings()
	defer h.store.UnsubscribeSettings(settingsCh)

	write := func(event string, data any) bool {
		payload, err := json.Marshal(data)
		if err != nil {
			return true
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case entries, ok := <-entriesCh:
			if !ok || !write("entries", entries) {
				return
			}
		case tags, ok := <-tagsCh:
			if !ok || !write("tags", tags) {
				return
			}
		case settings, ok := <-settingsCh:
			if !ok || !write("settings", settings) {
				return
			}
		}
	}
}

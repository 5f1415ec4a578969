package ws

import (
	"encoding/json"
	"time"
)

type CatalogUpdatedEvent struct {
	Type      string `json:"type"`
	Appended  int    `json:"appended"`
	Total     int    `json:"total"`
	Timestamp string `json:"timestamp"`
}

// NotifyCatalogUpdated broadcasts a catalog change to all connected clients.
// A nil hub is a no-op so callers never have to guard.
func (h *Hub) NotifyCatalogUpdated(appended, total int) {
	if h == nil {
		return
	}

	evt := CatalogUpdatedEvent{
		Type:      "catalog_updated",
		Appended:  appended,
		Total:     total,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}

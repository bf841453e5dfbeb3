// File: internal/devserver/handlers/event_handler.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nexsuite/chatorb/internal/devserver/middleware"
	"github.com/nexsuite/chatorb/internal/devserver/storage"
	"github.com/nexsuite/chatorb/internal/domain"
)

type EventHandler struct {
	events storage.EventRepository
}

func NewEventHandler(events storage.EventRepository) *EventHandler {
	return &EventHandler{events: events}
}

// RecentEvents returns the newest entries of the tenant's activity feed.
func (h *EventHandler) RecentEvents(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		writeError(w, "Missing tenant id", http.StatusBadRequest)
		return
	}

	recs, err := h.events.FindRecent(r.Context(), tenantID, 20)
	if err != nil {
		writeError(w, "Could not retrieve events", http.StatusInternalServerError)
		return
	}

	out := make([]domain.Event, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.ToDomain())
	}
	writeJSON(w, http.StatusOK, out)
}

// TelemetryPayload is the analytics event shape recorded by the client after
// a successful send.
type TelemetryPayload struct {
	Event          string `json:"event"`
	ConversationID string `json:"conversationId"`
	Page           string `json:"page"`
	PageName       string `json:"pageName"`
}

// RecordTelemetry accepts a fire-and-forget analytics event and logs it.
func RecordTelemetry(w http.ResponseWriter, r *http.Request) {
	var payload TelemetryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	slog.Info("TELEMETRY",
		slog.String("event", payload.Event),
		slog.String("conversation_id", payload.ConversationID),
		slog.String("page", payload.Page),
		slog.String("page_name", payload.PageName),
	)

	w.WriteHeader(http.StatusNoContent)
}

// File: internal/devserver/handlers/ai_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nexsuite/chatorb/internal/devserver/middleware"
	"github.com/nexsuite/chatorb/internal/devserver/reply"
	"github.com/nexsuite/chatorb/internal/devserver/storage"
	"github.com/nexsuite/chatorb/internal/domain"
)

type AIHandler struct {
	conversations storage.ConversationRepository
	messages      storage.MessageRepository
	provider      reply.Provider
}

func NewAIHandler(conversations storage.ConversationRepository, messages storage.MessageRepository, provider reply.Provider) *AIHandler {
	return &AIHandler{
		conversations: conversations,
		messages:      messages,
		provider:      provider,
	}
}

// GenerateReply produces the assistant's answer for a user message and stores
// it against the conversation, so the client's post-send refetch picks up
// both turns.
func (h *AIHandler) GenerateReply(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		writeError(w, "Missing tenant id", http.StatusBadRequest)
		return
	}

	var req struct {
		Message        string                `json:"message"`
		ConversationID string                `json:"conversationId"`
		Context        domain.MessageContext `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" || req.ConversationID == "" {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if _, err := h.conversations.FindByID(r.Context(), tenantID, req.ConversationID); err != nil {
		if errors.Is(err, storage.ErrConversationNotFound) {
			writeError(w, "Conversation not found", http.StatusNotFound)
			return
		}
		writeError(w, "Could not generate reply", http.StatusInternalServerError)
		return
	}

	recs, err := h.messages.FindByConversationID(r.Context(), req.ConversationID)
	if err != nil {
		writeError(w, "Could not generate reply", http.StatusInternalServerError)
		return
	}
	history := make([]domain.Message, 0, len(recs))
	for _, rec := range recs {
		history = append(history, rec.ToDomain())
	}

	content, err := h.provider.GenerateReply(r.Context(), req.Message, history, req.Context)
	if err != nil {
		writeError(w, "Could not generate reply", http.StatusInternalServerError)
		return
	}

	rec := &storage.MessageRecord{
		ID:             uuid.NewString(),
		ConversationID: req.ConversationID,
		Role:           string(domain.RoleAssistant),
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.messages.Create(r.Context(), rec); err != nil {
		writeError(w, "Could not store reply", http.StatusInternalServerError)
		return
	}
	if err := h.conversations.TouchUpdatedAt(r.Context(), req.ConversationID); err != nil {
		writeError(w, "Could not store reply", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"content": content})
}

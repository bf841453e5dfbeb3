// File: internal/devserver/handlers/conversation_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nexsuite/chatorb/internal/devserver/middleware"
	"github.com/nexsuite/chatorb/internal/devserver/storage"
	"github.com/nexsuite/chatorb/internal/domain"
)

type ConversationHandler struct {
	conversations storage.ConversationRepository
	messages      storage.MessageRepository
}

func NewConversationHandler(conversations storage.ConversationRepository, messages storage.MessageRepository) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		messages:      messages,
	}
}

// ListConversations returns the tenant's conversations, most recent first.
func (h *ConversationHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		writeError(w, "Missing tenant id", http.StatusBadRequest)
		return
	}

	recs, err := h.conversations.FindByTenantID(r.Context(), tenantID)
	if err != nil {
		writeError(w, "Could not retrieve conversations", http.StatusInternalServerError)
		return
	}

	out := make([]domain.Conversation, 0, len(recs))
	for _, rec := range recs {
		count, err := h.messages.CountByConversationID(r.Context(), rec.ID)
		if err != nil {
			writeError(w, "Could not retrieve conversations", http.StatusInternalServerError)
			return
		}
		out = append(out, rec.ToDomain(int(count)))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateConversation creates an empty conversation for the tenant.
func (h *ConversationHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		writeError(w, "Missing tenant id", http.StatusBadRequest)
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}

	now := time.Now().UTC()
	rec := &storage.ConversationRecord{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Title:     strings.TrimSpace(req.Title),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.conversations.Create(r.Context(), rec); err != nil {
		writeError(w, "Could not create conversation", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, rec.ToDomain(0))
}

// DeleteConversation removes a conversation and its messages.
func (h *ConversationHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		writeError(w, "Missing tenant id", http.StatusBadRequest)
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.conversations.Delete(r.Context(), tenantID, id); err != nil {
		if errors.Is(err, storage.ErrConversationNotFound) {
			writeError(w, "Conversation not found", http.StatusNotFound)
			return
		}
		writeError(w, "Could not delete conversation", http.StatusInternalServerError)
		return
	}
	if err := h.messages.DeleteByConversationID(r.Context(), id); err != nil {
		writeError(w, "Could not delete conversation messages", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMessages returns the full message set of one conversation.
func (h *ConversationHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		writeError(w, "Missing tenant id", http.StatusBadRequest)
		return
	}

	id := mux.Vars(r)["id"]
	if _, err := h.conversations.FindByID(r.Context(), tenantID, id); err != nil {
		if errors.Is(err, storage.ErrConversationNotFound) {
			writeError(w, "Conversation not found", http.StatusNotFound)
			return
		}
		writeError(w, "Could not retrieve messages", http.StatusInternalServerError)
		return
	}

	recs, err := h.messages.FindByConversationID(r.Context(), id)
	if err != nil {
		writeError(w, "Could not retrieve messages", http.StatusInternalServerError)
		return
	}

	out := make([]domain.Message, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.ToDomain())
	}
	writeJSON(w, http.StatusOK, out)
}

// AppendMessage stores one turn against a conversation.
func (h *ConversationHandler) AppendMessage(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		writeError(w, "Missing tenant id", http.StatusBadRequest)
		return
	}

	id := mux.Vars(r)["id"]
	if _, err := h.conversations.FindByID(r.Context(), tenantID, id); err != nil {
		if errors.Is(err, storage.ErrConversationNotFound) {
			writeError(w, "Conversation not found", http.StatusNotFound)
			return
		}
		writeError(w, "Could not append message", http.StatusInternalServerError)
		return
	}

	var req struct {
		Content string                `json:"content"`
		Role    domain.Role           `json:"role"`
		Context domain.MessageContext `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if !req.Role.Valid() {
		writeError(w, "Unknown message role", http.StatusBadRequest)
		return
	}

	contextJSON, _ := json.Marshal(req.Context)
	rec := &storage.MessageRecord{
		ID:             uuid.NewString(),
		ConversationID: id,
		Role:           string(req.Role),
		Content:        req.Content,
		ContextJSON:    string(contextJSON),
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.messages.Create(r.Context(), rec); err != nil {
		writeError(w, "Could not append message", http.StatusInternalServerError)
		return
	}
	if err := h.conversations.TouchUpdatedAt(r.Context(), id); err != nil {
		writeError(w, "Could not append message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, rec.ToDomain())
}

// File: internal/services/api/interface.go
package api

import (
	"context"

	"github.com/nexsuite/chatorb/internal/domain"
)

// TelemetryEvent is the payload recorded after a successful send round-trip.
type TelemetryEvent struct {
	Event          string                `json:"event"`
	ConversationID domain.ConversationID `json:"conversationId"`
	Page           string                `json:"page"`
	PageName       string                `json:"pageName"`
}

// Reply is the generated assistant answer for a user message.
type Reply struct {
	Content string `json:"content"`
}

// Client is the single gateway to the backend the widget consumes. No other
// component calls the remote endpoints directly.
type Client interface {
	ListConversations(ctx context.Context) ([]domain.Conversation, error)
	CreateConversation(ctx context.Context, title string) (*domain.Conversation, error)
	DeleteConversation(ctx context.Context, id domain.ConversationID) error
	ListMessages(ctx context.Context, id domain.ConversationID) ([]domain.Message, error)
	AppendMessage(ctx context.Context, id domain.ConversationID, content string, role domain.Role, msgCtx domain.MessageContext) (*domain.Message, error)
	GenerateReply(ctx context.Context, id domain.ConversationID, message string, msgCtx domain.MessageContext) (*Reply, error)
	RecentEvents(ctx context.Context) ([]domain.Event, error)
	RecordTelemetry(ctx context.Context, event TelemetryEvent) error
}

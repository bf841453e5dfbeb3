// File: internal/devserver/reply/provider.go
package reply

import (
	"context"

	"github.com/nexsuite/chatorb/internal/domain"
)

// Provider generates the assistant's answer for a user message, given the
// conversation history and the context bundle the widget attached.
type Provider interface {
	GenerateReply(ctx context.Context, message string, history []domain.Message, msgCtx domain.MessageContext) (string, error)
}

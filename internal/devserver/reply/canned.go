// File: internal/devserver/reply/canned.go
package reply

import (
	"context"
	"fmt"
	"strings"

	"github.com/nexsuite/chatorb/internal/domain"
)

// CannedProvider answers with deterministic template replies. It is the
// default for local development so the client can be exercised end to end
// without an AI key.
type CannedProvider struct{}

func NewCannedProvider() *CannedProvider {
	return &CannedProvider{}
}

func (p *CannedProvider) GenerateReply(ctx context.Context, message string, history []domain.Message, msgCtx domain.MessageContext) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "You asked: *%s*\n\n", strings.TrimSpace(message))
	if msgCtx.Page != "" {
		fmt.Fprintf(&b, "I can see you're on `%s`. ", msgCtx.Page)
	}
	if len(msgCtx.RecentEvents) > 0 {
		b.WriteString("Based on your recent activity:\n\n")
		for _, ev := range msgCtx.RecentEvents {
			fmt.Fprintf(&b, "- %s\n", ev)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "This is a canned development reply (turn %d). Configure AI_API_KEY to get live answers.", len(history)+1)

	return b.String(), nil
}

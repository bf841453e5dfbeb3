// File: internal/services/session/exchange.go
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nexsuite/chatorb/internal/domain"
	"github.com/nexsuite/chatorb/internal/services/api"
	"github.com/nexsuite/chatorb/internal/services/pagecontext"
)

// maxContextEvents caps how many recent platform events ride along with an
// outgoing message.
const maxContextEvents = 5

// Exchange orchestrates one send round-trip: persist the user's message, ask
// the backend for a generated reply, then reconcile by refetching from source.
// Neither message is inserted optimistically; the refetch is authoritative.
type Exchange struct {
	store     *Store
	client    api.Client
	telemetry Telemetry
	resolver  *pagecontext.Resolver
	logger    Logger
	now       func() time.Time

	mu     sync.Mutex
	typing bool
}

func NewExchange(store *Store, client api.Client, telemetry Telemetry, resolver *pagecontext.Resolver, logger Logger) (*Exchange, error) {
	if store == nil {
		return nil, NewValidationError("constructor", "store is required")
	}
	if client == nil {
		return nil, NewValidationError("constructor", "api client is required")
	}
	if resolver == nil {
		return nil, NewValidationError("constructor", "page context resolver is required")
	}
	if telemetry == nil {
		telemetry = NoOpTelemetry{}
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &Exchange{
		store:     store,
		client:    client,
		telemetry: telemetry,
		resolver:  resolver,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Typing reports whether a send round-trip is currently outstanding. It is
// false in every other state, including after a failed send.
func (e *Exchange) Typing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.typing
}

// Send performs the full round-trip for rawText typed on the page at path.
// Whitespace-only input is a no-op. When no conversation is active one is
// created first, in the same user action, so the message is never dropped for
// lack of a conversation. On success the message list is refetched and the
// conversation list marked stale; on failure all previously displayed state
// is preserved for retry.
func (e *Exchange) Send(ctx context.Context, rawText, path string) error {
	content := strings.TrimSpace(rawText)
	if content == "" {
		return nil
	}

	e.setTyping(true)
	defer e.setTyping(false)

	pc := e.resolver.Resolve(path)

	if !e.store.HasActive() {
		if _, err := e.store.Create(ctx, ConversationTitle(pc, e.now())); err != nil {
			return err
		}
	}
	id := e.store.ActiveID()

	msgCtx := domain.MessageContext{
		Page:         path,
		RecentEvents: e.store.EventDescriptions(maxContextEvents),
		Timestamp:    e.now(),
	}

	if _, err := e.client.AppendMessage(ctx, id, content, domain.RoleUser, msgCtx); err != nil {
		e.logger.Warn("append message failed", "conversation_id", id, "error", err)
		return NewBackendError("send", "could not deliver message", err)
	}

	if _, err := e.client.GenerateReply(ctx, id, content, msgCtx); err != nil {
		e.logger.Warn("reply generation failed", "conversation_id", id, "error", err)
		return NewBackendError("send", "could not generate reply", err)
	}

	e.store.MarkListStale()
	if err := e.store.RefreshMessages(ctx); err != nil {
		// The round-trip itself succeeded; the next read refetches anyway.
		e.logger.Warn("post-send message refresh failed", "conversation_id", id, "error", err)
	}

	e.telemetry.MessageSent(string(id), path, pc.PageName)
	return nil
}

func (e *Exchange) setTyping(v bool) {
	e.mu.Lock()
	e.typing = v
	e.mu.Unlock()
}

// ConversationTitle composes the default title for an implicitly created
// conversation: the current page name plus the creation date.
func ConversationTitle(pc domain.PageContext, t time.Time) string {
	return fmt.Sprintf("%s - %s", pc.PageName, t.Format("Jan 2, 2006"))
}

// File: internal/services/session/policy.go
package session

import (
	"context"
	"time"

	"github.com/nexsuite/chatorb/internal/services/pagecontext"
)

// AutoSelect decides, when the widget opens with nothing active, whether to
// resume an existing conversation or start a fresh one. With an empty list it
// creates a conversation titled after the current page and date; otherwise it
// selects the first conversation in whatever order the backend returned.
type AutoSelect struct {
	store    *Store
	resolver *pagecontext.Resolver
	logger   Logger
	now      func() time.Time
}

func NewAutoSelect(store *Store, resolver *pagecontext.Resolver, logger Logger) (*AutoSelect, error) {
	if store == nil {
		return nil, NewValidationError("constructor", "store is required")
	}
	if resolver == nil {
		return nil, NewValidationError("constructor", "page context resolver is required")
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &AutoSelect{store: store, resolver: resolver, logger: logger, now: time.Now}, nil
}

// Run applies the policy once. It is a no-op when a conversation is already
// active, which is what keeps repeated renders (and close/reopen with a live
// session) from spawning duplicate conversations.
func (p *AutoSelect) Run(ctx context.Context, path string) error {
	if p.store.HasActive() {
		return nil
	}

	conversations, err := p.store.Conversations(ctx)
	if err != nil && len(conversations) == 0 {
		return err
	}

	if len(conversations) == 0 {
		pc := p.resolver.Resolve(path)
		title := ConversationTitle(pc, p.now())
		p.logger.Info("no conversations found, creating one", "title", title)
		_, err := p.store.Create(ctx, title)
		return err
	}

	return p.store.Select(ctx, conversations[0].ID)
}

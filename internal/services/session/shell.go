// File: internal/services/session/shell.go
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nexsuite/chatorb/internal/domain"
	"github.com/nexsuite/chatorb/internal/services/pagecontext"
)

// Shell holds the purely presentational state of the widget: whether it is
// open, whether the conversation list is shown instead of the thread, the
// draft in the input box, and the last user-visible notice. Opening is the
// sole trigger for the auto-selection policy and the lazy list/events
// fetches; closing preserves all store state so reopening resumes where the
// user left off.
type Shell struct {
	store    *Store
	exchange *Exchange
	policy   *AutoSelect
	resolver *pagecontext.Resolver
	logger   Logger
	now      func() time.Time

	mu       sync.Mutex
	isOpen   bool
	showList bool
	draft    string
	notice   string
}

func NewShell(store *Store, exchange *Exchange, policy *AutoSelect, resolver *pagecontext.Resolver, logger Logger) (*Shell, error) {
	if store == nil {
		return nil, NewValidationError("constructor", "store is required")
	}
	if exchange == nil {
		return nil, NewValidationError("constructor", "exchange is required")
	}
	if policy == nil {
		return nil, NewValidationError("constructor", "auto-select policy is required")
	}
	if resolver == nil {
		return nil, NewValidationError("constructor", "page context resolver is required")
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &Shell{
		store:    store,
		exchange: exchange,
		policy:   policy,
		resolver: resolver,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Open transitions the widget from closed to open for the page at path.
// Already-open is a no-op. A failed list fetch or policy run leaves the
// widget open and interactive with a notice set.
func (s *Shell) Open(ctx context.Context, path string) {
	s.mu.Lock()
	if s.isOpen {
		s.mu.Unlock()
		return
	}
	s.isOpen = true
	s.mu.Unlock()

	if _, err := s.store.Conversations(ctx); err != nil {
		s.setNotice("Failed to load conversations")
	}
	if _, err := s.store.RecentEvents(ctx); err != nil {
		// Context enrichment only; the widget works without the feed.
		s.logger.Warn("recent events unavailable", "error", err)
	}

	if err := s.policy.Run(ctx, path); err != nil {
		s.logger.Warn("auto-selection failed", "error", err)
		s.setNotice("Failed to start a conversation")
	}
}

// Close hides the widget. Store state is deliberately untouched.
func (s *Shell) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = false
}

func (s *Shell) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// ToggleConversationList flips between the thread view and the list view.
// Independent of open/closed state.
func (s *Shell) ToggleConversationList() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showList = !s.showList
}

func (s *Shell) ShowConversationList() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showList
}

// SetDraft replaces the input-box contents.
func (s *Shell) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
}

func (s *Shell) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// CanSend mirrors the send button's disabled state: a whitespace-only draft
// or an outstanding round-trip disables sending.
func (s *Shell) CanSend() bool {
	return strings.TrimSpace(s.Draft()) != "" && !s.exchange.Typing()
}

// Send submits the current draft. The draft is cleared only on confirmed
// success; any failure preserves it so the user can retry, and raises a
// notice.
func (s *Shell) Send(ctx context.Context, path string) error {
	draft := s.Draft()
	if err := s.exchange.Send(ctx, draft, path); err != nil {
		s.setNotice("Failed to send message")
		return err
	}
	s.SetDraft("")
	return nil
}

// NewConversation starts an explicit fresh conversation for the current page.
func (s *Shell) NewConversation(ctx context.Context, path string) (*domain.Conversation, error) {
	pc := s.resolver.Resolve(path)
	created, err := s.store.Create(ctx, ConversationTitle(pc, s.now()))
	if err != nil {
		s.setNotice("Failed to create conversation")
		return nil, err
	}
	return created, nil
}

// DeleteConversation removes a conversation on the user's behalf.
func (s *Shell) DeleteConversation(ctx context.Context, id domain.ConversationID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.setNotice("Failed to delete conversation")
		return err
	}
	return nil
}

// Notice returns the last user-visible notification, or "".
func (s *Shell) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// ClearNotice dismisses the current notification.
func (s *Shell) ClearNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = ""
}

func (s *Shell) setNotice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = msg
}

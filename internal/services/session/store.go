// File: internal/services/session/store.go
package session

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/nexsuite/chatorb/internal/domain"
	"github.com/nexsuite/chatorb/internal/services/api"
)

// maxTitleRunes caps conversation titles on create.
const maxTitleRunes = 100

// Store owns the two pieces of shared mutable state of the widget: the
// conversation list and the active conversation's message list. All remote
// access to those resources goes through here.
//
// Fetches are guarded by a monotonic generation counter per resource: a
// response that arrives after a newer fetch (or after the active conversation
// changed) is discarded instead of overwriting fresher state.
type Store struct {
	client api.Client
	logger Logger

	mu            sync.Mutex
	conversations []domain.Conversation
	listFetched   bool
	listStale     bool
	listGen       uint64

	activeID domain.ConversationID
	messages []domain.Message
	msgGen   uint64

	events        []domain.Event
	eventsFetched bool
}

func NewStore(client api.Client, logger Logger) (*Store, error) {
	if client == nil {
		return nil, NewValidationError("constructor", "api client is required")
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &Store{client: client, logger: logger}, nil
}

// Conversations returns the conversation list, fetching it when it has never
// been fetched or has been marked stale. The backend's ordering is preserved
// as-is. On fetch failure the previously cached list stays available and is
// returned alongside the error.
func (s *Store) Conversations(ctx context.Context) ([]domain.Conversation, error) {
	s.mu.Lock()
	if s.listFetched && !s.listStale {
		cached := copyConversations(s.conversations)
		s.mu.Unlock()
		return cached, nil
	}
	s.listGen++
	gen := s.listGen
	s.mu.Unlock()

	fetched, err := s.client.ListConversations(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Warn("conversation list fetch failed", "error", err)
		return copyConversations(s.conversations), NewBackendError("list_conversations", "could not fetch conversations", err)
	}
	if gen != s.listGen {
		// A newer fetch superseded this one; keep whatever state it produced.
		s.logger.Debug("discarding superseded conversation list response", "gen", gen)
		return copyConversations(s.conversations), nil
	}

	s.conversations = fetched
	s.listFetched = true
	s.listStale = false
	return copyConversations(s.conversations), nil
}

// CachedConversations returns the last fetched list without touching the
// network.
func (s *Store) CachedConversations() []domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyConversations(s.conversations)
}

// MarkListStale schedules a lazy refetch of the conversation list.
func (s *Store) MarkListStale() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listStale = true
}

// Select makes id the active conversation and loads its messages, replacing
// the displayed set entirely. An id outside the last-fetched list forces a
// refetch first; if the conversation still cannot be found the selection
// fails rather than activating an empty shell of a conversation.
func (s *Store) Select(ctx context.Context, id domain.ConversationID) error {
	if id == "" {
		return NewValidationError("select_conversation", "conversation id is required")
	}

	if !s.knows(id) {
		s.MarkListStale()
		if _, err := s.Conversations(ctx); err != nil {
			return err
		}
		if !s.knows(id) {
			return NewNotFoundError("select_conversation", id)
		}
	}

	s.mu.Lock()
	s.activeID = id
	s.messages = nil
	s.msgGen++
	gen := s.msgGen
	s.mu.Unlock()

	return s.fetchMessages(ctx, id, gen)
}

// RefreshMessages refetches the active conversation's messages. It is a no-op
// when nothing is active.
func (s *Store) RefreshMessages(ctx context.Context) error {
	s.mu.Lock()
	id := s.activeID
	if id == "" {
		s.mu.Unlock()
		return nil
	}
	s.msgGen++
	gen := s.msgGen
	s.mu.Unlock()

	return s.fetchMessages(ctx, id, gen)
}

func (s *Store) fetchMessages(ctx context.Context, id domain.ConversationID, gen uint64) error {
	fetched, err := s.client.ListMessages(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Warn("message fetch failed", "conversation_id", id, "error", err)
		return NewBackendError("list_messages", "could not fetch messages", err)
	}
	if gen != s.msgGen || id != s.activeID {
		// The active conversation moved on while this fetch was in flight.
		s.logger.Debug("discarding superseded message response", "conversation_id", id)
		return nil
	}

	s.messages = fetched
	return nil
}

// Create asks the backend for a new conversation and, on success, makes it
// active with an empty message list. The conversation list is marked stale so
// it picks up the new entry on the next read. On failure nothing changes.
func (s *Store) Create(ctx context.Context, title string) (*domain.Conversation, error) {
	title = truncateTitle(strings.TrimSpace(title))
	if title == "" {
		return nil, NewValidationError("create_conversation", "conversation title cannot be empty")
	}

	created, err := s.client.CreateConversation(ctx, title)
	if err != nil {
		return nil, NewBackendError("create_conversation", "could not create conversation", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = created.ID
	s.messages = nil
	s.msgGen++ // invalidates any in-flight message fetch
	s.listStale = true
	return created, nil
}

// Delete removes a conversation. Deleting the active conversation clears the
// active reference and the displayed messages; deleting any other leaves both
// untouched. On failure no local state changes.
func (s *Store) Delete(ctx context.Context, id domain.ConversationID) error {
	if id == "" {
		return NewValidationError("delete_conversation", "conversation id is required")
	}

	if err := s.client.DeleteConversation(ctx, id); err != nil {
		return NewBackendError("delete_conversation", "could not delete conversation", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeID == id {
		s.activeID = ""
		s.messages = nil
		s.msgGen++
	}
	kept := s.conversations[:0]
	for _, c := range s.conversations {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.conversations = kept
	s.listStale = true
	return nil
}

// ActiveID returns the id of the active conversation, or "" when none is.
func (s *Store) ActiveID() domain.ConversationID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// HasActive reports whether a conversation is currently active.
func (s *Store) HasActive() bool {
	return s.ActiveID() != ""
}

// Messages returns the displayed message set: always the full set for the
// active conversation as last fetched.
func (s *Store) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// RecentEvents returns the platform's recent-activity feed, fetched lazily on
// first use. A failed fetch surfaces the error but keeps any cached feed.
func (s *Store) RecentEvents(ctx context.Context) ([]domain.Event, error) {
	s.mu.Lock()
	if s.eventsFetched {
		cached := copyEvents(s.events)
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	fetched, err := s.client.RecentEvents(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Warn("recent events fetch failed", "error", err)
		return copyEvents(s.events), NewBackendError("recent_events", "could not fetch recent events", err)
	}
	s.events = fetched
	s.eventsFetched = true
	return copyEvents(s.events), nil
}

// EventDescriptions returns up to max descriptions from the cached feed, for
// the context bundle attached to outgoing messages.
func (s *Store) EventDescriptions(max int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if max > len(s.events) {
		max = len(s.events)
	}
	out := make([]string, 0, max)
	for _, e := range s.events[:max] {
		out = append(out, e.Description)
	}
	return out
}

func (s *Store) knows(id domain.ConversationID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.listFetched {
		return false
	}
	for _, c := range s.conversations {
		if c.ID == id {
			return true
		}
	}
	return false
}

func truncateTitle(title string) string {
	if utf8.RuneCountInString(title) <= maxTitleRunes {
		return title
	}
	runes := []rune(title)
	return string(runes[:maxTitleRunes])
}

func copyConversations(in []domain.Conversation) []domain.Conversation {
	out := make([]domain.Conversation, len(in))
	copy(out, in)
	return out
}

func copyEvents(in []domain.Event) []domain.Event {
	out := make([]domain.Event, len(in))
	copy(out, in)
	return out
}

type noopLogger struct{}

func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}

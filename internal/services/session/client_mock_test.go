// File: internal/services/session/client_mock_test.go
package session_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nexsuite/chatorb/internal/domain"
	"github.com/nexsuite/chatorb/internal/services/api"
)

// fakeClient is an in-memory stand-in for the backend. It mimics the real
// contract closely enough for the session layer: created conversations show
// up in subsequent lists, appended messages and generated replies land in the
// per-conversation message sets.
type fakeClient struct {
	mu sync.Mutex

	conversations []domain.Conversation
	messages      map[domain.ConversationID][]domain.Message
	events        []domain.Event

	listErr      error
	createErr    error
	deleteErr    error
	messagesErr  error
	appendErr    error
	replyErr     error
	eventsErr    error
	telemetryErr error

	listCalls      int
	createCalls    int
	deleteCalls    int
	messagesCalls  int
	appendCalls    int
	replyCalls     int
	telemetryCalls int

	createdTitles []string
	lastAppend    appendCall
	telemetry     []api.TelemetryEvent

	// listResults, when set, overrides the conversation list per list call.
	listResults [][]domain.Conversation
	// onList runs at the start of each list call (1-based); used to block a
	// fetch so a later one can overtake it.
	onList func(call int)
	// onAppend runs before AppendMessage returns.
	onAppend func()

	nextID int
}

type appendCall struct {
	conversationID domain.ConversationID
	content        string
	role           domain.Role
	msgCtx         domain.MessageContext
}

func newFakeClient(conversations ...domain.Conversation) *fakeClient {
	return &fakeClient{
		conversations: conversations,
		messages:      map[domain.ConversationID][]domain.Message{},
	}
}

func conv(id, title string) domain.Conversation {
	return domain.Conversation{
		ID:        domain.ConversationID(id),
		Title:     title,
		CreatedAt: time.Now(),
	}
}

func msg(conversationID, id string, role domain.Role, content string) domain.Message {
	return domain.Message{
		ID:             id,
		ConversationID: domain.ConversationID(conversationID),
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now(),
	}
}

func (f *fakeClient) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	f.mu.Lock()
	f.listCalls++
	call := f.listCalls
	hook := f.onList
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.listResults) > 0 {
		idx := call - 1
		if idx >= len(f.listResults) {
			idx = len(f.listResults) - 1
		}
		return append([]domain.Conversation(nil), f.listResults[idx]...), nil
	}
	return append([]domain.Conversation(nil), f.conversations...), nil
}

func (f *fakeClient) CreateConversation(ctx context.Context, title string) (*domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	created := domain.Conversation{
		ID:        domain.ConversationID(fmt.Sprintf("created-%d", f.nextID)),
		Title:     title,
		CreatedAt: time.Now(),
	}
	f.createdTitles = append(f.createdTitles, title)
	f.conversations = append([]domain.Conversation{created}, f.conversations...)
	return &created, nil
}

func (f *fakeClient) DeleteConversation(ctx context.Context, id domain.ConversationID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.conversations[:0]
	for _, c := range f.conversations {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	f.conversations = kept
	delete(f.messages, id)
	return nil
}

func (f *fakeClient) ListMessages(ctx context.Context, id domain.ConversationID) ([]domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messagesCalls++
	if f.messagesErr != nil {
		return nil, f.messagesErr
	}
	return append([]domain.Message(nil), f.messages[id]...), nil
}

func (f *fakeClient) AppendMessage(ctx context.Context, id domain.ConversationID, content string, role domain.Role, msgCtx domain.MessageContext) (*domain.Message, error) {
	f.mu.Lock()
	f.appendCalls++
	f.lastAppend = appendCall{conversationID: id, content: content, role: role, msgCtx: msgCtx}
	hook := f.onAppend
	f.mu.Unlock()

	if hook != nil {
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	f.nextID++
	stored := msg(string(id), fmt.Sprintf("m%d", f.nextID), role, content)
	f.messages[id] = append(f.messages[id], stored)
	return &stored, nil
}

func (f *fakeClient) GenerateReply(ctx context.Context, id domain.ConversationID, message string, msgCtx domain.MessageContext) (*api.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replyCalls++
	if f.replyErr != nil {
		return nil, f.replyErr
	}
	f.nextID++
	content := "reply to: " + message
	f.messages[id] = append(f.messages[id], msg(string(id), fmt.Sprintf("m%d", f.nextID), domain.RoleAssistant, content))
	return &api.Reply{Content: content}, nil
}

func (f *fakeClient) RecentEvents(ctx context.Context) ([]domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.eventsErr != nil {
		return nil, f.eventsErr
	}
	return append([]domain.Event(nil), f.events...), nil
}

func (f *fakeClient) RecordTelemetry(ctx context.Context, event api.TelemetryEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.telemetryCalls++
	if f.telemetryErr != nil {
		return f.telemetryErr
	}
	f.telemetry = append(f.telemetry, event)
	return nil
}

// capturingTelemetry records MessageSent calls synchronously.
type capturingTelemetry struct {
	mu     sync.Mutex
	events []api.TelemetryEvent
}

func (c *capturingTelemetry) MessageSent(conversationID string, page, pageName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, api.TelemetryEvent{
		Event:          "assistant_message_sent",
		ConversationID: domain.ConversationID(conversationID),
		Page:           page,
		PageName:       pageName,
	})
}

func (c *capturingTelemetry) recorded() []api.TelemetryEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]api.TelemetryEvent(nil), c.events...)
}

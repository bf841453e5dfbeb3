// File: internal/services/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nexsuite/chatorb/internal/domain"
)

// TenantHeader carries the tenant scope on every request. Tenant selection
// itself happens outside the widget; the id is resolved once at session start
// and threaded in through the Config.
const TenantHeader = "X-Tenant-ID"

type httpClient struct {
	config *Config
	http   *http.Client
	retry  *RetryConfig
	logger Logger
}

// Logger is the logging interface used by the api client.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// NewClient builds the backend client from validated configuration.
func NewClient(config *Config, logger Logger) (Client, error) {
	if config == nil {
		return nil, NewConfigError("config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}
	if logger == nil {
		return nil, NewConfigError("logger is required")
	}

	return &httpClient{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
		retry: &RetryConfig{
			MaxAttempts: config.MaxRetries,
			Delay:       config.RetryDelay,
		},
		logger: logger,
	}, nil
}

func (c *httpClient) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	err := RetryWithBackoff(ctx, c.retry, func(ctx context.Context) error {
		conversations = nil
		return c.do(ctx, http.MethodGet, "/conversations", nil, &conversations, "list_conversations")
	})
	return conversations, err
}

func (c *httpClient) CreateConversation(ctx context.Context, title string) (*domain.Conversation, error) {
	body := map[string]string{"title": title}
	var conversation domain.Conversation
	// Single attempt: create is not idempotent.
	if err := c.do(ctx, http.MethodPost, "/conversations", body, &conversation, "create_conversation"); err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (c *httpClient) DeleteConversation(ctx context.Context, id domain.ConversationID) error {
	path := fmt.Sprintf("/conversations/%s", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, "delete_conversation")
}

func (c *httpClient) ListMessages(ctx context.Context, id domain.ConversationID) ([]domain.Message, error) {
	path := fmt.Sprintf("/conversations/%s/messages", id)
	var messages []domain.Message
	err := RetryWithBackoff(ctx, c.retry, func(ctx context.Context) error {
		messages = nil
		return c.do(ctx, http.MethodGet, path, nil, &messages, "list_messages")
	})
	return messages, err
}

func (c *httpClient) AppendMessage(ctx context.Context, id domain.ConversationID, content string, role domain.Role, msgCtx domain.MessageContext) (*domain.Message, error) {
	if !role.Valid() {
		return nil, NewValidationError("append_message", "unknown message role")
	}
	path := fmt.Sprintf("/conversations/%s/messages", id)
	body := map[string]interface{}{
		"content": content,
		"role":    role,
		"context": msgCtx,
	}
	var message domain.Message
	if err := c.do(ctx, http.MethodPost, path, body, &message, "append_message"); err != nil {
		return nil, err
	}
	return &message, nil
}

func (c *httpClient) GenerateReply(ctx context.Context, id domain.ConversationID, message string, msgCtx domain.MessageContext) (*Reply, error) {
	body := map[string]interface{}{
		"message":        message,
		"conversationId": id,
		"context":        msgCtx,
	}
	var reply Reply
	if err := c.do(ctx, http.MethodPost, "/ai/chat", body, &reply, "generate_reply"); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *httpClient) RecentEvents(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	err := RetryWithBackoff(ctx, c.retry, func(ctx context.Context) error {
		events = nil
		return c.do(ctx, http.MethodGet, "/event-logs/recent", nil, &events, "recent_events")
	})
	return events, err
}

func (c *httpClient) RecordTelemetry(ctx context.Context, event TelemetryEvent) error {
	return c.do(ctx, http.MethodPost, "/telemetry", event, nil, "record_telemetry")
}

// do performs one request against the backend, carrying the tenant header and
// decoding a JSON response into out when out is non-nil.
func (c *httpClient) do(ctx context.Context, method, path string, body, out interface{}, operation string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return NewValidationError(operation, "could not encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return NewValidationError(operation, err.Error())
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(TenantHeader, c.config.TenantID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", "operation", operation, "error", err)
		return NewNetworkError(operation, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("backend returned non-success status",
			"operation", operation, "status", resp.StatusCode)
		return NewStatusError(operation, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewNetworkError(operation, "could not decode response body", err)
	}
	return nil
}

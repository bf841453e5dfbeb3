// File: internal/services/api/client_test.go
package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexsuite/chatorb/internal/domain"
	"github.com/nexsuite/chatorb/internal/services"
	"github.com/nexsuite/chatorb/internal/services/api"
)

func testConfig(baseURL string) *api.Config {
	return &api.Config{
		BaseURL:    baseURL,
		TenantID:   "tenant-42",
		Timeout:    5 * time.Second,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	}
}

func newTestClient(t *testing.T, baseURL string) api.Client {
	t.Helper()
	client, err := api.NewClient(testConfig(baseURL), &services.NoOpLogger{})
	require.NoError(t, err)
	return client
}

func TestNewClientValidatesConfig(t *testing.T) {
	_, err := api.NewClient(&api.Config{}, &services.NoOpLogger{})
	require.Error(t, err)

	_, err = api.NewClient(nil, &services.NoOpLogger{})
	require.Error(t, err)
}

func TestListConversationsCarriesTenantHeader(t *testing.T) {
	var gotTenant string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTenant = r.Header.Get(api.TenantHeader)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/conversations", r.URL.Path)
		json.NewEncoder(w).Encode([]domain.Conversation{
			{ID: "c1", Title: "First", MessageCount: 4},
		})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	conversations, err := client.ListConversations(context.Background())
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, domain.ConversationID("c1"), conversations[0].ID)
	assert.Equal(t, 4, conversations[0].MessageCount)
	assert.Equal(t, "tenant-42", gotTenant)
}

func TestListConversationsRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]domain.Conversation{{ID: "c1", Title: "First"}})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	conversations, err := client.ListConversations(context.Background())
	require.NoError(t, err)
	assert.Len(t, conversations, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestCreateConversationIsSingleAttempt(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.CreateConversation(context.Background(), "New chat")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "writes must not be retried")
}

func TestCreateConversationSendsTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "CRM - Sep 1, 2026", body["title"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Conversation{ID: "c9", Title: body["title"]})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	created, err := client.CreateConversation(context.Background(), "CRM - Sep 1, 2026")
	require.NoError(t, err)
	assert.Equal(t, domain.ConversationID("c9"), created.ID)
}

func TestAppendMessageRejectsUnknownRole(t *testing.T) {
	client := newTestClient(t, "http://localhost:0")
	_, err := client.AppendMessage(context.Background(), "c1", "hi", domain.Role("system"), domain.MessageContext{})
	require.Error(t, err)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, api.ErrTypeValidation, apiErr.Type)
}

func TestAppendMessageCarriesContextBundle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations/c1/messages", r.URL.Path)
		var body struct {
			Content string                `json:"content"`
			Role    domain.Role           `json:"role"`
			Context domain.MessageContext `json:"context"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Hello", body.Content)
		assert.Equal(t, domain.RoleUser, body.Role)
		assert.Equal(t, "/crm", body.Context.Page)
		assert.Len(t, body.Context.RecentEvents, 2)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Message{ID: "m1", ConversationID: "c1", Role: body.Role, Content: body.Content})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	created, err := client.AppendMessage(context.Background(), "c1", "Hello", domain.RoleUser, domain.MessageContext{
		Page:         "/crm",
		RecentEvents: []string{"a", "b"},
		Timestamp:    time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "m1", created.ID)
}

func TestStatusErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	err := client.DeleteConversation(context.Background(), "ghost")
	require.Error(t, err)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, api.ErrTypeNotFound, apiErr.Type)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.False(t, apiErr.Retryable())
}

func TestNetworkErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := newTestClient(t, srv.URL)
	_, err := client.RecentEvents(context.Background())
	require.Error(t, err)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, api.ErrTypeNetwork, apiErr.Type)
	assert.True(t, apiErr.Retryable())
}

func TestGenerateReplyDecodesContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ai/chat", r.URL.Path)
		var body struct {
			Message        string `json:"message"`
			ConversationID string `json:"conversationId"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Hello", body.Message)
		assert.Equal(t, "c1", body.ConversationID)
		json.NewEncoder(w).Encode(map[string]string{"content": "Hi there"})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	reply, err := client.GenerateReply(context.Background(), "c1", "Hello", domain.MessageContext{})
	require.NoError(t, err)
	assert.Equal(t, "Hi there", reply.Content)
}

func TestRecordTelemetryPostsEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/telemetry", r.URL.Path)
		var body api.TelemetryEvent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "assistant_message_sent", body.Event)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	err := client.RecordTelemetry(context.Background(), api.TelemetryEvent{
		Event:          "assistant_message_sent",
		ConversationID: "c1",
		Page:           "/crm",
		PageName:       "CRM",
	})
	require.NoError(t, err)
}

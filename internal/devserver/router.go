// File: internal/devserver/router.go
package devserver

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nexsuite/chatorb/internal/devserver/handlers"
	"github.com/nexsuite/chatorb/internal/devserver/middleware"
	"github.com/nexsuite/chatorb/internal/devserver/reply"
	"github.com/nexsuite/chatorb/internal/devserver/storage"
)

// NewRouter wires the devserver's routes: the REST contracts the widget
// consumes, plus a health endpoint.
func NewRouter(
	conversations storage.ConversationRepository,
	messages storage.MessageRepository,
	events storage.EventRepository,
	provider reply.Provider,
) *mux.Router {
	conversationHandler := handlers.NewConversationHandler(conversations, messages)
	aiHandler := handlers.NewAIHandler(conversations, messages, provider)
	eventHandler := handlers.NewEventHandler(events)

	r := mux.NewRouter()
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	api := r.NewRoute().Subrouter()
	api.Use(middleware.RequireTenant)
	api.HandleFunc("/conversations", conversationHandler.ListConversations).Methods("GET")
	api.HandleFunc("/conversations", conversationHandler.CreateConversation).Methods("POST")
	api.HandleFunc("/conversations/{id}", conversationHandler.DeleteConversation).Methods("DELETE")
	api.HandleFunc("/conversations/{id}/messages", conversationHandler.ListMessages).Methods("GET")
	api.HandleFunc("/conversations/{id}/messages", conversationHandler.AppendMessage).Methods("POST")
	api.HandleFunc("/event-logs/recent", eventHandler.RecentEvents).Methods("GET")
	api.HandleFunc("/ai/chat", aiHandler.GenerateReply).Methods("POST")
	api.HandleFunc("/telemetry", handlers.RecordTelemetry).Methods("POST")

	return r
}

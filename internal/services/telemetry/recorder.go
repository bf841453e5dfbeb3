// File: internal/services/telemetry/recorder.go
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/nexsuite/chatorb/internal/domain"
	"github.com/nexsuite/chatorb/internal/services/api"
)

// EventMessageSent is recorded once per successful send round-trip.
const EventMessageSent = "assistant_message_sent"

// Logger defines the logging interface used by the recorder.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Recorder ships analytics events to the backend without ever blocking the
// visible operation: each event is posted from its own goroutine with its own
// deadline, and delivery failures are only logged.
type Recorder struct {
	client  api.Client
	logger  Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewRecorder(client api.Client, logger Logger) *Recorder {
	return &Recorder{
		client:  client,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// MessageSent records a completed send. Fire-and-forget.
func (r *Recorder) MessageSent(conversationID string, page, pageName string) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		err := r.client.RecordTelemetry(ctx, api.TelemetryEvent{
			Event:          EventMessageSent,
			ConversationID: domain.ConversationID(conversationID),
			Page:           page,
			PageName:       pageName,
		})
		if err != nil {
			r.logger.Warn("telemetry delivery failed", "event", EventMessageSent, "error", err)
		}
	}()
}

// Flush waits for in-flight events; used on shutdown and in tests.
func (r *Recorder) Flush() {
	r.wg.Wait()
}

// File: internal/services/session/types.go
package session

// Logger defines the logging interface used across session components.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Telemetry records product analytics after a successful send. Recording is
// fire-and-forget: implementations must never block or fail the caller.
type Telemetry interface {
	MessageSent(conversationID string, page, pageName string)
}

// NoOpTelemetry discards all events (for testing).
type NoOpTelemetry struct{}

func (NoOpTelemetry) MessageSent(conversationID string, page, pageName string) {}

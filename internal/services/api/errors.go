// File: internal/services/api/errors.go
package api

import "fmt"

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeNetwork    ErrorType = "NETWORK"
	ErrTypeServer     ErrorType = "SERVER"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeValidation ErrorType = "VALIDATION"
)

type APIError struct {
	Type      ErrorType
	Operation string
	Status    int
	Message   string
	Cause     error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("API %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether a retry could plausibly succeed. Client-side
// mistakes and missing resources never benefit from another attempt.
func (e *APIError) Retryable() bool {
	switch e.Type {
	case ErrTypeNetwork, ErrTypeServer:
		return true
	default:
		return false
	}
}

func NewConfigError(msg string) *APIError {
	return &APIError{Type: ErrTypeConfig, Operation: "config", Message: msg}
}

func NewNetworkError(operation, msg string, cause error) *APIError {
	return &APIError{Type: ErrTypeNetwork, Operation: operation, Message: msg, Cause: cause}
}

func NewValidationError(operation, msg string) *APIError {
	return &APIError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

// NewStatusError classifies a non-2xx HTTP status into the error taxonomy.
func NewStatusError(operation string, status int) *APIError {
	errType := ErrTypeServer
	switch {
	case status == 404:
		errType = ErrTypeNotFound
	case status >= 400 && status < 500:
		errType = ErrTypeValidation
	}
	return &APIError{
		Type:      errType,
		Operation: operation,
		Status:    status,
		Message:   fmt.Sprintf("unexpected status %d", status),
	}
}

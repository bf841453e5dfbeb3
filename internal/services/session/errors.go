// File: internal/services/session/errors.go
package session

import (
	"fmt"

	"github.com/nexsuite/chatorb/internal/domain"
)

type ErrorType string

const (
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeBackend    ErrorType = "BACKEND"
)

type SessionError struct {
	Type           ErrorType
	Operation      string
	Message        string
	ConversationID domain.ConversationID
	Cause          error
}

func (e *SessionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("session %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("session %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *SessionError) Unwrap() error {
	return e.Cause
}

func NewValidationError(operation, msg string) *SessionError {
	return &SessionError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewNotFoundError(operation string, id domain.ConversationID) *SessionError {
	return &SessionError{
		Type:           ErrTypeNotFound,
		Operation:      operation,
		Message:        "conversation not found",
		ConversationID: id,
	}
}

func NewBackendError(operation, msg string, cause error) *SessionError {
	return &SessionError{Type: ErrTypeBackend, Operation: operation, Message: msg, Cause: cause}
}

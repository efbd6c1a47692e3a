package models

import "fmt"

// ChatError is the error body returned by the backend. It wraps the
// transport-level sentinel that produced it so errors.Is keeps working.
type ChatError struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"StatusCode"`

	cause error
}

// NewChatError builds a ChatError around cause.
func NewChatError(code int, message string, cause error) *ChatError {
	return &ChatError{Code: code, Message: message, cause: cause}
}

// WithCause returns a copy of e wrapping cause.
func (e ChatError) WithCause(cause error) *ChatError {
	e.cause = cause
	return &e
}

func (e *ChatError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%v: code %d: %s", e.cause, e.Code, e.Message)
	}
	return fmt.Sprintf("code %d: %s", e.Code, e.Message)
}

func (e *ChatError) Unwrap() error {
	return e.cause
}

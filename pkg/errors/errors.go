package errors

import (
	"context"
	"errors"
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeNetwork  ErrorType = "network"
	ErrorTypeStatus   ErrorType = "status"
	ErrorTypeStorage  ErrorType = "storage"
	ErrorTypeCanceled ErrorType = "canceled"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// Error represents a download error with type information
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Network wraps a transport level failure
func Network(err error) *Error {
	if errors.Is(err, context.Canceled) {
		return Canceled(err)
	}
	return &Error{Type: ErrorTypeNetwork, Message: err.Error(), Err: err}
}

// Status reports a non-success HTTP response
func Status(code int, status string) *Error {
	return &Error{Type: ErrorTypeStatus, Message: fmt.Sprintf("unexpected status %s", status), Code: code}
}

// Storage wraps a failure to persist a downloaded file
func Storage(err error) *Error {
	return &Error{Type: ErrorTypeStorage, Message: err.Error(), Err: err}
}

// Canceled wraps a context cancellation
func Canceled(err error) *Error {
	return &Error{Type: ErrorTypeCanceled, Message: "operation canceled", Err: err}
}

// TypeOf returns the ErrorType carried by err, or ErrorTypeUnknown
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// IsCanceled reports whether err stems from a canceled run
func IsCanceled(err error) bool {
	return TypeOf(err) == ErrorTypeCanceled || errors.Is(err, context.Canceled)
}

// IsRecoverable reports whether a failed image can be skipped while the run continues
func IsRecoverable(err error) bool {
	switch TypeOf(err) {
	case ErrorTypeNetwork, ErrorTypeStatus, ErrorTypeStorage:
		return true
	default:
		return false
	}
}

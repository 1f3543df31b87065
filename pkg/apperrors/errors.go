// Package apperrors classifies the failures a scan cycle can end with.
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorType groups errors by how the controller reacts to them
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeTransport     ErrorType = "transport"
	ErrorTypeMalformed     ErrorType = "malformed"
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeInternal      ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Field   string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Cause is the text shown to a user: the message plus the wrapped error, without the type prefix.
func (e *AppError) Cause() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

func NewValidationError(field, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Field:   field,
		Message: message,
	}
}

func NewTransportError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransport,
		Message: message,
		Err:     err,
	}
}

func NewMalformedError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeMalformed,
		Message: message,
		Err:     err,
	}
}

func NewConfigurationError(field, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Field:   field,
		Message: message,
	}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// Classify returns err as an *AppError, wrapping unknown errors.
// Cancellation, deadlines and network errors are transport failures.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewTransportError("request timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return NewTransportError("request canceled", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return NewTransportError("network error", err)
	}

	return NewInternalError(err.Error(), err)
}

// TypeOf reports the ErrorType of err, or "" for nil.
func TypeOf(err error) ErrorType {
	if err == nil {
		return ""
	}
	return Classify(err).Type
}

// Is reports whether err classifies as the given type
func Is(err error, t ErrorType) bool {
	return err != nil && TypeOf(err) == t
}

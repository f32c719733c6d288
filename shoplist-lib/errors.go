// ABOUTME: Error types and handling for the Shoplist library
// ABOUTME: Translates core errors into structured library errors with context

package shoplist

import (
	"errors"
	"fmt"

	coreerrors "shoplist-api/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation indicates invalid input
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeNotFound indicates a missing code, list or product
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeExpired indicates a share code that has expired
	ErrorTypeExpired ErrorType = "expired"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"

	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// ErrClientClosed is returned when operations are attempted on a closed client
var ErrClientClosed = NewError(ErrorTypeInternal, "client is closed")

// wrapCoreError converts errors from the core services
func wrapCoreError(err error) error {
	if err == nil {
		return nil
	}

	var notFound *coreerrors.NotFoundError
	if errors.As(err, &notFound) {
		errType := ErrorTypeNotFound
		if notFound.Expired {
			errType = ErrorTypeExpired
		}
		return NewError(errType, notFound.Error()).
			WithCause(err).
			WithContext("resource", notFound.Resource).
			WithContext("id", notFound.ID)
	}

	var validation *coreerrors.ValidationError
	if errors.As(err, &validation) {
		return NewError(ErrorTypeValidation, validation.Message).
			WithCause(err).
			WithContext("field", validation.Field)
	}

	return NewError(ErrorTypeInternal, "operation failed").WithCause(err)
}

func isType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsExpiredError checks if an error reports an expired share code
func IsExpiredError(err error) bool {
	return isType(err, ErrorTypeExpired)
}

// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for better error handling and API responses

package errors

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by stores when a key is absent
var ErrKeyNotFound = errors.New("key not found")

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string

	// Expired is set when the resource existed but is past its expiration
	Expired bool
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Expired {
		return fmt.Sprintf("%s expired: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents an error returned by an external API
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// ConflictError represents a write that could not be placed without overwriting existing data
type ConflictError struct {
	Resource string
	Attempts int
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict after %d attempts", e.Resource, e.Attempts)
}

// UnauthorizedError represents a missing or rejected credential
type UnauthorizedError struct {
	Message string
}

// Error implements the error interface
func (e *UnauthorizedError) Error() string {
	return "unauthorized: " + e.Message
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsExpired checks if an error is a NotFoundError caused by expiration
func IsExpired(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr) && notFoundErr.Expired
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// IsUnauthorized checks if an error is an UnauthorizedError
func IsUnauthorized(err error) bool {
	var unauthorizedErr *UnauthorizedError
	return errors.As(err, &unauthorizedErr)
}

// IsKeyNotFound checks if an error is the store's missing-key sentinel
func IsKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

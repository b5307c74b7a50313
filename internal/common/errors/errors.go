// Package errors provides standardized error handling for the assistant pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Mandatory-step failures: these abort the request.
	ErrCodeMessageRequired       ErrorCode = "MESSAGE_REQUIRED"
	ErrCodeCompletionUnavailable ErrorCode = "COMPLETION_UNAVAILABLE"
	ErrCodeCompletionFailed      ErrorCode = "COMPLETION_FAILED"

	// Recovered-locally failures: these degrade, never abort.
	ErrCodeContextDegraded      ErrorCode = "CONTEXT_DEGRADED"
	ErrCodeActionHandlingFailed ErrorCode = "ACTION_HANDLING_FAILED"

	// Not an exception: reported as a clarifying response, no mutation.
	ErrCodeAmbiguousMatch ErrorCode = "AMBIGUOUS_MATCH"

	// Store-level conditions.
	ErrCodeCatalogQueryFailed ErrorCode = "CATALOG_QUERY_FAILED"
	ErrCodeItemNotFound       ErrorCode = "ITEM_NOT_FOUND"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is lets errors.Is match two StandardErrors by code.
func (e *StandardError) Is(target error) bool {
	var se *StandardError
	if errors.As(target, &se) {
		return se.Code == e.Code
	}
	return false
}

// NewMessageRequiredError creates the non-retryable missing-message error.
func NewMessageRequiredError() *StandardError {
	return &StandardError{
		Code:      ErrCodeMessageRequired,
		Message:   "Message is required",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCompletionUnavailableError signals that the completion client has no usable
// configuration. The request is aborted as service-unavailable.
func NewCompletionUnavailableError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCompletionUnavailable,
		Message:   "Completion service is not configured",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCompletionFailedError wraps a failed completion call. Fatal for the
// request; internal detail is kept for diagnostics, not retried here.
func NewCompletionFailedError(err error) *StandardError {
	e := &StandardError{
		Code:      ErrCodeCompletionFailed,
		Message:   "Completion request failed",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

// NewContextDegradedError records a non-fatal context-assembly failure. The
// affected section degrades to its zero value and processing continues.
func NewContextDegradedError(section string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeContextDegraded,
		Message:   "Context section could not be assembled",
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"section": section},
		Timestamp: time.Now().UTC(),
	}
}

// NewActionHandlingFailedError records a failure while resolving or executing a
// detected action; the message falls back to plain chat.
func NewActionHandlingFailedError(step string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeActionHandlingFailed,
		Message:   "Action handling failed",
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"step": step},
		Timestamp: time.Now().UTC(),
	}
}

// NewAmbiguousMatchError signals that no catalog entry could be confidently
// resolved for a requested action.
func NewAmbiguousMatchError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAmbiguousMatch,
		Message:   "No catalog entry could be resolved",
		Details:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogQueryFailedError wraps a catalog store query failure.
func NewCatalogQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogQueryFailed,
		Message:   "Catalog query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ErrItemNotFound is returned by cart/wishlist stores when the referenced line
// does not exist. Reported to the user, never fatal.
var ErrItemNotFound = &StandardError{
	Code:      ErrCodeItemNotFound,
	Message:   "Item not found",
	Retryable: false,
}

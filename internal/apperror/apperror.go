// Package apperror defines the error taxonomy shared by all handlers:
// validation failures, empty lookups, and storage failures each map to a
// distinct HTTP status.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an application error.
type Kind int

const (
	// Internal is an unclassified server-side failure.
	Internal Kind = iota
	// Validation means caller-supplied input failed a precondition.
	Validation
	// NotFound means a lookup legitimately found nothing.
	NotFound
	// NoContent means a required input was absent, answered with an empty result.
	NoContent
	// Storage means the persistence layer could not complete an operation.
	Storage
)

// Error is an application error with a kind and a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case NoContent:
		return http.StatusNoContent
	case Storage, Internal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewValidation reports invalid caller input.
func NewValidation(message string) *Error {
	return &Error{Kind: Validation, Message: message}
}

// NewNotFound reports an empty lookup result.
func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

// NewNoContent reports a missing required input.
func NewNoContent(message string) *Error {
	return &Error{Kind: NoContent, Message: message}
}

// NewStorage wraps a persistence failure.
func NewStorage(message string, err error) *Error {
	return &Error{Kind: Storage, Message: message, Err: err}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

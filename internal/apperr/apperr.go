// Package apperr normalizes lower-layer failures into a fixed taxonomy
// with a stable externally-visible status. Internal diagnostic detail
// never reaches the user-facing message.
package apperr

import (
	"errors"
	"net/http"

	"github.com/Junaid083/SprintSync/internal/repo"
	"github.com/Junaid083/SprintSync/internal/token"
	"github.com/Junaid083/SprintSync/internal/validate"
)

type Kind int

const (
	KindAuth Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindThrottled
	KindInternal
)

const genericMessage = "An unexpected error occurred. Please try again."

type Error struct {
	Kind    Kind
	Message string
	Fields  []validate.FieldError
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Status is the HTTP status surfaced for this kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindAuth:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindThrottled:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Public returns the message safe to show a caller. Unclassified failures
// collapse to a generic message; the cause stays available for logging.
func (e *Error) Public() string {
	if e.Kind == KindInternal {
		return genericMessage
	}
	return e.Message
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func Validation(message string, fields []validate.FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Throttled(message string) *Error {
	return &Error{Kind: KindThrottled, Message: message}
}

func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: genericMessage, cause: cause}
}

// Classify maps any failure from the layers below into the taxonomy.
// Already-classified errors pass through unchanged.
func Classify(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, token.ErrExpired):
		return Auth("Authentication token has expired")
	case errors.Is(err, token.ErrMalformed), errors.Is(err, token.ErrSignatureInvalid):
		return Auth("Invalid authentication token")
	case errors.Is(err, repo.ErrorNotFound):
		return NotFound("Resource not found or you don't have permission to access it")
	case errors.Is(err, repo.ErrorConflict):
		return Conflict("Resource already exists")
	default:
		return Internal(err)
	}
}

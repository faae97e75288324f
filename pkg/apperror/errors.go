package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so callers can branch without string matching.
type Kind string

const (
	KindValidation Kind = "VALIDATION" // malformed caller input; never retried
	KindNotFound   Kind = "NOT_FOUND"  // referenced entity does not exist
	KindUpstream   Kind = "UPSTREAM"   // provider boundary failure; retryable with backoff

	// KindUnauthorized guards the admin surface; the engine's own
	// operations never produce it.
	KindUnauthorized Kind = "UNAUTHORIZED"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation creates a validation error. The message is surfaced verbatim
// to the caller, so it must be human-readable.
func Validation(message string) *AppError {
	return &AppError{
		Kind:       KindValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotFound creates a not-found error for the named entity.
func NotFound(entity string) *AppError {
	return &AppError{
		Kind:       KindNotFound,
		Message:    fmt.Sprintf("%s não encontrado", entity),
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates an authentication error for the admin surface.
func Unauthorized(message string) *AppError {
	return &AppError{
		Kind:       KindUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Upstream wraps a failure reported by the backing provider or another
// external boundary. Distinguished from validation so callers know the
// request itself was fine and a retry may succeed.
func Upstream(message string, err error) *AppError {
	return &AppError{
		Kind:       KindUpstream,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// IsKind reports whether err is (or wraps) an *AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

package api

import (
	"fmt"
	"net/http"

	"github.com/amirasaad/crowdfund/pkg/domain"
)

// Error is a failed remote call. It unwraps to the domain sentinel that
// classifies it, so callers can use errors.Is with domain errors.
type Error struct {
	Op         string
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Message == "" {
		return fmt.Sprintf("%s: %v (status %d)", e.Op, e.Err, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v (status %d): %s", e.Op, e.Err, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusError builds the Error for a non-2xx response.
func StatusError(op string, status int, message string) *Error {
	return &Error{Op: op, StatusCode: status, Message: message, Err: SentinelFor(status)}
}

// NetworkError builds the Error for a request that got no response.
func NetworkError(op string, cause error) *Error {
	return &Error{Op: op, Message: cause.Error(), Err: fmt.Errorf("%w: %w", domain.ErrNetwork, cause)}
}

// SentinelFor maps an HTTP status to the domain error it represents.
func SentinelFor(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrValidation
	case http.StatusConflict:
		return domain.ErrAlreadyExists
	default:
		return domain.ErrServer
	}
}

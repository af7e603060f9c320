package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when the credential is missing, invalid or expired
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a user is not allowed to perform an action
	ErrForbidden = errors.New("forbidden")
)

// Sync errors
var (
	// ErrNetwork is returned when the server could not be reached or did not answer in time.
	ErrNetwork = errors.New("network unavailable")
	// ErrServer is returned when the server answered with an unexpected non-2xx status.
	ErrServer = errors.New("server rejected request")
	// ErrNotCached is returned when the server was unreachable and the local
	// cache had nothing to serve instead.
	ErrNotCached = errors.New("not available offline")
	// ErrNoCredential is returned when an operation needs a session and there is none.
	ErrNoCredential = errors.New("not signed in")
	// ErrInvalidTransition is returned when a status change would leave a terminal state.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrPaymentFailed is returned when the payment provider reported a failed payment.
	ErrPaymentFailed = errors.New("payment failed")
)

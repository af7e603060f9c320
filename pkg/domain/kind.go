package domain

import (
	"context"
	"errors"
)

// Kind classifies an error for callers that need to branch on it without
// matching individual sentinels.
type Kind string

const (
	KindUnknown           Kind = "unknown"
	KindNetwork           Kind = "network"
	KindServer            Kind = "server"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindNotFound          Kind = "not_found"
	KindAlreadyExists     Kind = "already_exists"
	KindValidation        Kind = "validation"
	KindNotCached         Kind = "not_cached"
	KindNoCredential      Kind = "no_credential"
	KindInvalidTransition Kind = "invalid_transition"
	KindPaymentFailed     Kind = "payment_failed"
	KindCanceled          Kind = "canceled"
)

// Order matters: ErrNotCached wraps the remote cause, so it is checked first.
var kinds = []struct {
	err     error
	kind    Kind
	message string
}{
	{ErrNotCached, KindNotCached, "This content is not available offline."},
	{ErrNoCredential, KindNoCredential, "Please sign in to continue."},
	{ErrUnauthorized, KindUnauthorized, "Your session has expired. Please sign in again."},
	{ErrForbidden, KindForbidden, "You are not allowed to do that."},
	{ErrInvalidTransition, KindInvalidTransition, "This investment can no longer be changed."},
	{ErrPaymentFailed, KindPaymentFailed, "The payment did not go through."},
	{ErrValidation, KindValidation, "Some of the information is invalid."},
	{ErrNotFound, KindNotFound, "We couldn't find what you were looking for."},
	{ErrAlreadyExists, KindAlreadyExists, "That already exists."},
	{ErrNetwork, KindNetwork, "Check your internet connection and try again."},
	{ErrServer, KindServer, "Something went wrong on our side. Please try again."},
	{context.Canceled, KindCanceled, "The request was canceled."},
}

// KindOf returns the kind of err, or KindUnknown when err matches no known sentinel.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}

// Message returns a short human-readable message for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.message
		}
	}
	return "Something went wrong. Please try again."
}

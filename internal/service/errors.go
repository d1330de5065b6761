package service

import "errors"

// Business errors surfaced by the client services. Every failure leaving the
// sync layer is folded into one of these four categories so callers can
// decide between re-authentication, retry, and surfacing a problem to the
// user without inspecting transport details.
var (
	// ErrUnauthenticated indicates the operation needs a signed-in user or
	// the backend rejected the current credentials.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrRecordNotFound indicates the user's sync record does not exist on
	// the backend.
	ErrRecordNotFound = errors.New("sync record not found")

	// ErrTransient indicates a temporary failure (network loss, backend
	// unavailable); the operation is safe to retry as-is.
	ErrTransient = errors.New("transient sync failure")

	// ErrUnknown indicates an unclassified failure; retrying may or may not
	// help.
	ErrUnknown = errors.New("unknown sync failure")
)

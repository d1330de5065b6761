package adapter

import "errors"

// Sentinel transport errors. mapHTTPError wraps these around the response
// body so callers can match with [errors.Is] while still seeing the server's
// message.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("access forbidden")
	ErrNotFound            = errors.New("record not found")
	ErrConflict            = errors.New("record conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrUnavailable marks request-level failures (connection refused, DNS,
	// timeout) where no HTTP response was received at all.
	ErrUnavailable = errors.New("remote unavailable")
)

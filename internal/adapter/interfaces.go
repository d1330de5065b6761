// Package adapter provides transport-layer abstractions for communicating
// with the bunpo favorites service.
//
// The primary abstraction is [RemoteStore], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteStore]) whose live watch channel runs over a websocket.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNotFound] for 404, [ErrConflict] for 409).
package adapter

import (
	"context"

	"github.com/bunpo-app/bunpo/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore defines transport-agnostic access to the per-user remote
// favorites record. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
//
// The sync engine is the only component that talks to a RemoteStore; the UI
// shell never touches the remote record directly.
type RemoteStore interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if none has been set.
	Token() string

	// Authenticate exchanges the opaque user identifier for a bearer token
	// and stores it via SetToken. Returns an error if the request fails or
	// the server responds with a non-2xx status.
	Authenticate(ctx context.Context, userID int64) error

	// FetchRecord retrieves the user record for userID. Returns
	// [ErrNotFound] (wrapped) when no record exists for the user.
	FetchRecord(ctx context.Context, userID int64) (models.UserRecord, error)

	// CreateRecord creates a new user record. Returns [ErrConflict]
	// (wrapped) when a record for the user already exists.
	CreateRecord(ctx context.Context, record models.UserRecord) error

	// PutFavorites atomically overwrites the record's favorite set together
	// with its last-modified timestamp. Returns [ErrNotFound] (wrapped) when
	// the record does not exist; the caller decides whether to create it.
	PutFavorites(ctx context.Context, userID int64, favorites models.FavoriteSet, modified models.Timestamp) error

	// Watch opens the live update channel for userID. The returned channel
	// delivers one [models.RecordEvent] per remote change, starting with a
	// snapshot of the current state, and is closed when the underlying
	// connection fails or ctx is cancelled. Watch itself returns an error
	// only when the channel cannot be established at all.
	Watch(ctx context.Context, userID int64) (<-chan models.RecordEvent, error)
}

package service

import (
	"context"
	"time"

	"github.com/bunpo-app/bunpo/models"
)

// RemoteUpdateFunc is invoked by the live listener whenever the backend
// reports a new favorites state for the watched user. Callbacks run on the
// listener's goroutine and must not block for long.
type RemoteUpdateFunc func(favorites models.FavoriteSet, modified models.Timestamp)

// UnsubscribeFunc removes a previously registered callback. Calling it more
// than once is safe; every call after the first is a no-op.
type UnsubscribeFunc func()

// SyncEngine defines the client-side contract for exchanging the favorites
// state with the backend record. All methods resolve conflicts with
// last-write-wins semantics based on the record's last-modified timestamp,
// falling back to a set union when both sides carry the same timestamp with
// different content.
type SyncEngine interface {
	// PushLocal uploads the current local favorite set to the backend,
	// stamping it with the current time. If the backend record does not
	// exist yet, the engine creates it and retries the write exactly once.
	// On success the local last-modified mirror is advanced to the pushed
	// timestamp. The live listener is suspended for the duration of the
	// write so the device does not replay its own change.
	PushLocal(ctx context.Context, userID int64) error

	// PullRemote fetches the backend favorites state for userID. A missing
	// record is not an error: it yields an empty set and the zero
	// timestamp. The local store is not touched.
	PullRemote(ctx context.Context, userID int64) (models.FavoriteSet, models.Timestamp, error)

	// Reconcile merges the local and backend favorites state. The newer
	// side wins outright; equal timestamps with diverged content resolve
	// to the union of both sets, pushed back with a fresh timestamp. When
	// no backend record exists the local state is pushed as-is. On any
	// failure the local state is left unchanged.
	Reconcile(ctx context.Context, userID int64) error
}

// RemoteListener defines the contract for the live watch channel that
// streams backend favorites changes to the client. Subscriptions are
// reference counted: the underlying channel opens when the first callback
// registers and closes when the last one leaves. A lost connection is
// retried indefinitely at a fixed interval while subscribers remain.
type RemoteListener interface {
	// Subscribe registers fn for remote updates of userID's record and
	// returns the unsubscribe handle. The first subscription opens the
	// watch channel; later ones share it. Callbacks fire in registration
	// order.
	Subscribe(userID int64, fn RemoteUpdateFunc) UnsubscribeFunc

	// SuspendForWrite tears down the active watch channel so a local write
	// does not echo back, and returns a resume function. Resume schedules
	// the channel to reopen after the settle delay, provided subscribers
	// remain.
	SuspendForWrite() (resume func())

	// Stop tears down the watch channel and cancels any pending resume or
	// retry. Registered callbacks stay registered; Restart brings the
	// channel back for them.
	Stop()

	// Restart reopens the watch channel for userID if any subscribers are
	// registered. Used after sign-in to resume a listener stopped by
	// sign-out.
	Restart(userID int64)

	// State reports the listener's current lifecycle state.
	State() ListenerState
}

// FavoritesService defines the UI-facing contract for reading and mutating
// the favorites collection. Mutations apply to the local store immediately
// and are pushed to the backend after a short debounce window, so rapid
// toggling costs one request.
type FavoritesService interface {
	// Toggle flips the favorite status of grammarID in the local store and
	// schedules a debounced background push. The local change is visible
	// immediately regardless of connectivity.
	Toggle(ctx context.Context, grammarID int64) error

	// IsFavorite reports whether grammarID is currently favorited locally.
	IsFavorite(ctx context.Context, grammarID int64) (bool, error)

	// Favorites returns the favorite identifiers in
	// most-recently-added-first order.
	Favorites(ctx context.Context) ([]int64, error)

	// SubscribeRemote registers fn for live backend updates of the
	// signed-in user's favorites. Returns ErrUnauthenticated when no user
	// is signed in.
	SubscribeRemote(fn RemoteUpdateFunc) (UnsubscribeFunc, error)

	// Flush cancels any pending debounced push and pushes the local state
	// right away. A no-op when no user is signed in.
	Flush(ctx context.Context) error

	// Reconcile runs a full merge with the backend record for the
	// signed-in user. Returns ErrUnauthenticated when no user is signed
	// in.
	Reconcile(ctx context.Context) error
}

// SyncJob defines the contract for a background worker that periodically
// reconciles the local favorites with the backend record.
type SyncJob interface {
	// Start launches the background reconcile goroutine. It reconciles
	// every interval, defaulting to 5 minutes if interval is zero or
	// negative. Any previously running job is stopped before the new one
	// begins.
	Start(ctx context.Context, userID int64, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}

package store

import (
	"context"

	"github.com/bunpo-app/bunpo/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/local_store_mock.go -package=mock

// LocalStore is the device-owned persistence layer for the user's favorites.
// It holds the favorite set, the recency list used by the UI shell for
// "most-recently-added" display ordering, and the last-modified mirror
// timestamp that the sync engine compares against the remote record.
//
// The store is exclusively owned by the current device session; nothing else
// writes the underlying file.
type LocalStore interface {
	// Favorites returns a copy of the locally persisted favorite set.
	Favorites(ctx context.Context) (models.FavoriteSet, error)

	// OrderedFavorites returns the favorite identifiers in
	// most-recently-added-first order. The ordering list is owned by the UI
	// shell; sync code treats it as read-only.
	OrderedFavorites(ctx context.Context) ([]int64, error)

	// AddFavorite inserts id into the set and moves it to the front of the
	// recency list. Adding an existing favorite refreshes its recency.
	AddFavorite(ctx context.Context, id int64) error

	// RemoveFavorite deletes id from the set and the recency list.
	// Removing a missing favorite is a no-op.
	RemoveFavorite(ctx context.Context, id int64) error

	// ReplaceFavorites overwrites the persisted set with favorites, keeping
	// the relative recency of identifiers that survive the replacement.
	// Identifiers that arrive through sync with unknown recency are appended
	// at the back of the list.
	ReplaceFavorites(ctx context.Context, favorites models.FavoriteSet) error

	// LastModified returns the mirrored last-modified timestamp recorded
	// after the previous successful exchange with the remote record, or the
	// zero Timestamp if the device has never synchronised.
	LastModified(ctx context.Context) (models.Timestamp, error)

	// SetLastModified persists ts as the new last-modified mirror.
	SetLastModified(ctx context.Context, ts models.Timestamp) error

	// ResetSyncState clears the last-modified mirror. Called on sign-out;
	// the favorite set itself stays on the device.
	ResetSyncState(ctx context.Context) error
}

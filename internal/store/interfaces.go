package store

import (
	"context"

	"github.com/bunpo-app/bunpo/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/record_repository_mock.go -package=mock

// UserRecordRepository is the server-side persistence contract for the
// per-user favorites record.
type UserRecordRepository interface {
	// CreateRecord inserts a new user record and returns the stored row.
	// Returns [ErrUserRecordExists] when a record for the user is already
	// present.
	CreateRecord(ctx context.Context, record models.UserRecord) (models.UserRecord, error)

	// GetRecord loads the record for userID. Returns
	// [ErrUserRecordNotFound] when no record exists.
	GetRecord(ctx context.Context, userID int64) (models.UserRecord, error)

	// UpdateFavorites atomically overwrites the favorite set and its
	// last-modified timestamp, advancing last_sync_at, and returns the
	// updated record. Returns [ErrUserRecordNotFound] when no record
	// exists for userID.
	UpdateFavorites(ctx context.Context, userID int64, favorites models.FavoriteSet, modified models.Timestamp) (models.UserRecord, error)
}

package models

// UserRecord is the per-user document held by the remote favorites service.
// It is the durable source of truth shared by all of a user's sessions.
//
// Only Favorites and FavoritesLastModified belong to the synchronization
// subsystem; they are always written together, never independently. The
// profile fields (DisplayName, Email, PhotoURL) are owned by profile
// management and pass through untouched.
type UserRecord struct {
	UserID                int64       `json:"user_id"`
	Favorites             FavoriteSet `json:"favorites"`
	FavoritesLastModified Timestamp   `json:"favorites_last_modified"`
	LastSyncAt            Timestamp   `json:"last_sync_at"`
	CreatedAt             Timestamp   `json:"created_at"`
	DisplayName           string      `json:"display_name,omitempty"`
	Email                 string      `json:"email,omitempty"`
	PhotoURL              string      `json:"photo_url,omitempty"`
}

// MinimalUserRecord builds the smallest record the sync engine creates on
// demand when a write targets a user that has no remote record yet. CreatedAt
// is left zero; the backend stamps it on insert.
func MinimalUserRecord(userID int64, favorites FavoriteSet, modified Timestamp) UserRecord {
	if favorites == nil {
		favorites = FavoriteSet{}
	}
	return UserRecord{
		UserID:                userID,
		Favorites:             favorites,
		FavoritesLastModified: modified,
	}
}

package models

// RecordEvent is a single message on the live watch channel for a user
// record. Exists distinguishes a real document snapshot from a notification
// that the record is (still) absent; when Exists is false the other fields
// are zero.
type RecordEvent struct {
	Exists    bool        `json:"exists"`
	Favorites FavoriteSet `json:"favorites,omitempty"`
	Modified  Timestamp   `json:"favorites_last_modified"`
}

// Timestamped pairs a favorite set with the modification instant it was
// stamped with. It is the request body of a favorites write; the server
// applies both fields atomically.
type Timestamped struct {
	Favorites FavoriteSet `json:"favorites"`
	Modified  Timestamp   `json:"favorites_last_modified"`
}

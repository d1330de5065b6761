package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FavoriteSet is an unordered collection of grammar-entry identifiers the
// user has marked as favorites. Identifiers are unique by construction;
// display ordering is a separate concern kept outside the set (the local
// store persists a recency list alongside it).
//
// The JSON representation is a sorted array of identifiers, which keeps the
// wire and storage forms deterministic.
type FavoriteSet map[int64]struct{}

// NewFavoriteSet builds a set from the given identifiers, dropping duplicates.
func NewFavoriteSet(ids ...int64) FavoriteSet {
	set := make(FavoriteSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Add inserts id into the set. Adding an existing id is a no-op.
func (fs FavoriteSet) Add(id int64) { fs[id] = struct{}{} }

// Remove deletes id from the set. Removing a missing id is a no-op.
func (fs FavoriteSet) Remove(id int64) { delete(fs, id) }

// Contains reports whether id is a member of the set.
func (fs FavoriteSet) Contains(id int64) bool {
	_, ok := fs[id]
	return ok
}

// Len returns the number of favorites in the set.
func (fs FavoriteSet) Len() int { return len(fs) }

// Clone returns an independent copy of the set.
func (fs FavoriteSet) Clone() FavoriteSet {
	clone := make(FavoriteSet, len(fs))
	for id := range fs {
		clone[id] = struct{}{}
	}
	return clone
}

// Union returns a new set containing every member of fs and other. Neither
// input is modified. Union is the loss-avoiding merge used when two sessions
// edited favorites concurrently with no temporal signal to break the tie.
func (fs FavoriteSet) Union(other FavoriteSet) FavoriteSet {
	merged := fs.Clone()
	for id := range other {
		merged[id] = struct{}{}
	}
	return merged
}

// Equal reports whether fs and other hold exactly the same identifiers,
// independent of any ordering.
func (fs FavoriteSet) Equal(other FavoriteSet) bool {
	if len(fs) != len(other) {
		return false
	}
	for id := range fs {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}

// IDs returns the members as a slice sorted in ascending order.
func (fs FavoriteSet) IDs() []int64 {
	ids := make([]int64, 0, len(fs))
	for id := range fs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// MarshalJSON encodes the set as a sorted array of identifiers.
func (fs FavoriteSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(fs.IDs())
}

// UnmarshalJSON decodes an array of identifiers, discarding duplicates.
// null decodes to an empty set.
func (fs *FavoriteSet) UnmarshalJSON(data []byte) error {
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("decode favorite set: %w", err)
	}

	*fs = NewFavoriteSet(ids...)
	return nil
}

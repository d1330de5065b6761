package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/models"
	"github.com/google/uuid"
)

// inMemoryPath disables file persistence; used by tests and throwaway runs.
const inMemoryPath = ":memory:"

type localFileStore struct {
	path     string
	inMemory bool
	logger   *logger.Logger

	mu    sync.RWMutex
	state localPersistedState
}

type localPersistedState struct {
	DeviceID string `json:"device_id"`

	Favorites models.FavoriteSet `json:"favorites"`

	// RecentOrder lists favorite identifiers newest-first. It is the display
	// ordering side channel owned by the UI shell.
	RecentOrder []int64 `json:"recent_order"`

	// LastModified mirrors the remote record's favorites_last_modified after
	// the most recent successful exchange, as an ISO-8601 string on disk.
	LastModified models.Timestamp `json:"last_modified"`
}

// NewLocalStore opens (or creates) the JSON state file at path and returns a
// [LocalStore] backed by it. Passing ":memory:" or an empty path keeps all
// state in memory only.
func NewLocalStore(path string, log *logger.Logger) (LocalStore, error) {
	if path == "" {
		path = inMemoryPath
	}

	s := &localFileStore{
		path:     path,
		inMemory: path == inMemoryPath,
		logger:   log,
		state: localPersistedState{
			Favorites: models.FavoriteSet{},
		},
	}
	if err := s.load(); err != nil {
		return nil, err
	}

	if s.state.DeviceID == "" {
		s.state.DeviceID = uuid.NewString()
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *localFileStore) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local store file: %w", err)
	}

	var st localPersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode local store file: %w", err)
	}

	if st.Favorites == nil {
		st.Favorites = models.FavoriteSet{}
	}
	s.state = st

	return nil
}

// persistLocked writes the current state to disk. Callers must hold s.mu for
// writing (or be the only reference, as in NewLocalStore).
func (s *localFileStore) persistLocked() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local store dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local store: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write local store file: %w", err)
	}

	return nil
}

func (s *localFileStore) Favorites(_ context.Context) (models.FavoriteSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Favorites.Clone(), nil
}

func (s *localFileStore) OrderedFavorites(_ context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]int64, len(s.state.RecentOrder))
	copy(out, s.state.RecentOrder)
	return out, nil
}

func (s *localFileStore) AddFavorite(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Favorites.Add(id)
	s.state.RecentOrder = prependUnique(s.state.RecentOrder, id)

	return s.persistLocked()
}

func (s *localFileStore) RemoveFavorite(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Favorites.Remove(id)
	s.state.RecentOrder = removeID(s.state.RecentOrder, id)

	return s.persistLocked()
}

func (s *localFileStore) ReplaceFavorites(_ context.Context, favorites models.FavoriteSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if favorites == nil {
		favorites = models.FavoriteSet{}
	}

	// Keep the relative order of survivors, then append identifiers this
	// device has never seen. Their true recency lives on another device.
	kept := make([]int64, 0, favorites.Len())
	seen := models.FavoriteSet{}
	for _, id := range s.state.RecentOrder {
		if favorites.Contains(id) {
			kept = append(kept, id)
			seen.Add(id)
		}
	}
	for _, id := range favorites.IDs() {
		if !seen.Contains(id) {
			kept = append(kept, id)
		}
	}

	s.state.Favorites = favorites.Clone()
	s.state.RecentOrder = kept

	return s.persistLocked()
}

func (s *localFileStore) LastModified(_ context.Context) (models.Timestamp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LastModified, nil
}

func (s *localFileStore) SetLastModified(_ context.Context, ts models.Timestamp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.LastModified = ts
	return s.persistLocked()
}

func (s *localFileStore) ResetSyncState(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.LastModified = models.Timestamp{}
	return s.persistLocked()
}

func prependUnique(ids []int64, id int64) []int64 {
	out := make([]int64, 0, len(ids)+1)
	out = append(out, id)
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func removeID(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStore(t *testing.T) (LocalStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "favorites.json")
	s, err := NewLocalStore(path, logger.Nop())
	require.NoError(t, err)
	return s, path
}

// ── favorites + recency ──────────────────────────────────────────────────────

func TestLocalStore_AddFavorite_RecencyNewestFirst(t *testing.T) {
	s, _ := newTestLocalStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddFavorite(ctx, 10))
	require.NoError(t, s.AddFavorite(ctx, 20))
	require.NoError(t, s.AddFavorite(ctx, 30))

	order, err := s.OrderedFavorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{30, 20, 10}, order)
}

func TestLocalStore_AddFavorite_ReaddRefreshesRecency(t *testing.T) {
	s, _ := newTestLocalStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddFavorite(ctx, 10))
	require.NoError(t, s.AddFavorite(ctx, 20))
	require.NoError(t, s.AddFavorite(ctx, 10))

	favs, err := s.Favorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, favs.Len())

	order, err := s.OrderedFavorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20}, order)
}

func TestLocalStore_RemoveFavorite(t *testing.T) {
	s, _ := newTestLocalStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddFavorite(ctx, 10))
	require.NoError(t, s.AddFavorite(ctx, 20))
	require.NoError(t, s.RemoveFavorite(ctx, 10))
	require.NoError(t, s.RemoveFavorite(ctx, 99)) // missing id is fine

	favs, err := s.Favorites(ctx)
	require.NoError(t, err)
	assert.True(t, favs.Equal(models.NewFavoriteSet(20)))

	order, err := s.OrderedFavorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{20}, order)
}

func TestLocalStore_ReplaceFavorites_KeepsSurvivorOrder(t *testing.T) {
	s, _ := newTestLocalStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddFavorite(ctx, 1))
	require.NoError(t, s.AddFavorite(ctx, 2))
	require.NoError(t, s.AddFavorite(ctx, 3)) // order: 3 2 1

	// 2 removed remotely, 7 added remotely.
	require.NoError(t, s.ReplaceFavorites(ctx, models.NewFavoriteSet(1, 3, 7)))

	favs, err := s.Favorites(ctx)
	require.NoError(t, err)
	assert.True(t, favs.Equal(models.NewFavoriteSet(1, 3, 7)))

	order, err := s.OrderedFavorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 7}, order, "survivors keep order, unseen ids go last")
}

// ── sync state mirror ────────────────────────────────────────────────────────

func TestLocalStore_LastModified_DefaultsToZero(t *testing.T) {
	s, _ := newTestLocalStore(t)

	ts, err := s.LastModified(context.Background())
	require.NoError(t, err)
	assert.True(t, ts.IsZero())
}

func TestLocalStore_SetAndResetLastModified(t *testing.T) {
	s, _ := newTestLocalStore(t)
	ctx := context.Background()

	stamp := models.NewTimestamp(time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC))
	require.NoError(t, s.SetLastModified(ctx, stamp))

	got, err := s.LastModified(ctx)
	require.NoError(t, err)
	assert.True(t, stamp.Equal(got))

	require.NoError(t, s.ResetSyncState(ctx))
	got, err = s.LastModified(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

// ── persistence ──────────────────────────────────────────────────────────────

func TestLocalStore_PersistsAcrossReopen(t *testing.T) {
	s, path := newTestLocalStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddFavorite(ctx, 11))
	require.NoError(t, s.AddFavorite(ctx, 22))
	stamp := models.NewTimestamp(time.Date(2026, 6, 7, 8, 9, 10, 0, time.UTC))
	require.NoError(t, s.SetLastModified(ctx, stamp))

	reopened, err := NewLocalStore(path, logger.Nop())
	require.NoError(t, err)

	favs, err := reopened.Favorites(ctx)
	require.NoError(t, err)
	assert.True(t, favs.Equal(models.NewFavoriteSet(11, 22)))

	order, err := reopened.OrderedFavorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{22, 11}, order)

	got, err := reopened.LastModified(ctx)
	require.NoError(t, err)
	assert.True(t, stamp.Equal(got))
}

func TestLocalStore_InMemory_NoFile(t *testing.T) {
	s, err := NewLocalStore(":memory:", logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.AddFavorite(context.Background(), 5))

	favs, err := s.Favorites(context.Background())
	require.NoError(t, err)
	assert.True(t, favs.Contains(5))
}

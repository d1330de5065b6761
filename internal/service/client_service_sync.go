package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bunpo-app/bunpo/internal/adapter"
	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/internal/store"
	"github.com/bunpo-app/bunpo/models"
)

// maxPushAttempts bounds the create-and-retry self-heal: one write, and on a
// missing record exactly one more after recreating it.
const maxPushAttempts = 2

type syncEngine struct {
	local    store.LocalStore
	remote   adapter.RemoteStore
	listener RemoteListener
	log      *logger.Logger

	// now is swappable in tests.
	now func() models.Timestamp
}

// NewSyncEngine creates a syncEngine exchanging state between the local store
// and the backend record, suspending listener around its own writes.
func NewSyncEngine(local store.LocalStore, remote adapter.RemoteStore, listener RemoteListener, log *logger.Logger) SyncEngine {
	return &syncEngine{
		local:    local,
		remote:   remote,
		listener: listener,
		log:      log,
		now:      models.Now,
	}
}

// PushLocal implements SyncEngine.
func (e *syncEngine) PushLocal(ctx context.Context, userID int64) error {
	favorites, err := e.local.Favorites(ctx)
	if err != nil {
		return fmt.Errorf("read local favorites: %w", err)
	}
	stamp := e.now()

	resume := e.listener.SuspendForWrite()
	defer resume()

	if err := e.push(ctx, userID, favorites, stamp); err != nil {
		return err
	}

	if err := e.local.SetLastModified(ctx, stamp); err != nil {
		return fmt.Errorf("advance local timestamp: %w", err)
	}

	e.log.Debug().Int64("user_id", userID).Int("favorites", favorites.Len()).Msg("pushed local favorites")
	return nil
}

// PullRemote implements SyncEngine.
func (e *syncEngine) PullRemote(ctx context.Context, userID int64) (models.FavoriteSet, models.Timestamp, error) {
	record, exists, err := e.fetch(ctx, userID)
	if err != nil {
		return nil, models.Timestamp{}, err
	}
	if !exists {
		return models.NewFavoriteSet(), models.Timestamp{}, nil
	}
	return record.Favorites, record.FavoritesLastModified, nil
}

// Reconcile implements SyncEngine. The newer side wins by timestamp; a tie
// with diverged content resolves to the union of both sets. Local state is
// only touched after every remote call has succeeded.
func (e *syncEngine) Reconcile(ctx context.Context, userID int64) error {
	record, exists, err := e.fetch(ctx, userID)
	if err != nil {
		return err
	}

	localFavorites, err := e.local.Favorites(ctx)
	if err != nil {
		return fmt.Errorf("read local favorites: %w", err)
	}
	localModified, err := e.local.LastModified(ctx)
	if err != nil {
		return fmt.Errorf("read local timestamp: %w", err)
	}

	if !exists {
		stamp := localModified
		if stamp.IsZero() {
			stamp = e.now()
		}
		return e.pushSuppressed(ctx, userID, localFavorites, stamp)
	}

	remoteModified := record.FavoritesLastModified

	switch {
	case remoteModified.After(localModified):
		if err := e.local.ReplaceFavorites(ctx, record.Favorites); err != nil {
			return fmt.Errorf("apply remote favorites: %w", err)
		}
		if err := e.local.SetLastModified(ctx, remoteModified); err != nil {
			return fmt.Errorf("apply remote timestamp: %w", err)
		}
		e.log.Debug().Int64("user_id", userID).Msg("reconcile: remote wins")
		return nil

	case localModified.After(remoteModified):
		e.log.Debug().Int64("user_id", userID).Msg("reconcile: local wins")
		return e.pushSuppressed(ctx, userID, localFavorites, localModified)

	default:
		if localFavorites.Equal(record.Favorites) {
			return nil
		}

		merged := localFavorites.Union(record.Favorites)
		stamp := e.now()
		if err := e.pushSuppressed(ctx, userID, merged, stamp); err != nil {
			return err
		}
		if err := e.local.ReplaceFavorites(ctx, merged); err != nil {
			return fmt.Errorf("apply merged favorites: %w", err)
		}
		if err := e.local.SetLastModified(ctx, stamp); err != nil {
			return fmt.Errorf("apply merged timestamp: %w", err)
		}
		e.log.Debug().Int64("user_id", userID).Int("favorites", merged.Len()).Msg("reconcile: merged diverged sets")
		return nil
	}
}

// fetch loads the backend record, distinguishing a missing record from other
// failures.
func (e *syncEngine) fetch(ctx context.Context, userID int64) (models.UserRecord, bool, error) {
	record, err := e.remote.FetchRecord(ctx, userID)
	if errors.Is(err, adapter.ErrNotFound) {
		return models.UserRecord{}, false, nil
	}
	if err != nil {
		return models.UserRecord{}, false, mapAdapterError(err)
	}
	return record, true, nil
}

// pushSuppressed runs push inside a listener write-suspension window and
// advances the local timestamp mirror on success.
func (e *syncEngine) pushSuppressed(ctx context.Context, userID int64, favorites models.FavoriteSet, stamp models.Timestamp) error {
	resume := e.listener.SuspendForWrite()
	defer resume()

	if err := e.push(ctx, userID, favorites, stamp); err != nil {
		return err
	}

	if err := e.local.SetLastModified(ctx, stamp); err != nil {
		return fmt.Errorf("advance local timestamp: %w", err)
	}
	return nil
}

// push uploads favorites, recreating a missing backend record once before
// giving up.
func (e *syncEngine) push(ctx context.Context, userID int64, favorites models.FavoriteSet, stamp models.Timestamp) error {
	var err error
	for attempt := 1; attempt <= maxPushAttempts; attempt++ {
		err = e.remote.PutFavorites(ctx, userID, favorites, stamp)
		if err == nil {
			return nil
		}
		if !errors.Is(err, adapter.ErrNotFound) || attempt == maxPushAttempts {
			break
		}

		e.log.Info().Int64("user_id", userID).Msg("backend record missing, recreating")
		record := models.MinimalUserRecord(userID, favorites, stamp)
		if cerr := e.remote.CreateRecord(ctx, record); cerr != nil && !errors.Is(cerr, adapter.ErrConflict) {
			return mapAdapterError(cerr)
		}
	}
	return mapAdapterError(err)
}

package service

import (
	"context"

	"github.com/bunpo-app/bunpo/internal/adapter"
	"github.com/bunpo-app/bunpo/internal/config"
	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/internal/session"
	"github.com/bunpo-app/bunpo/internal/store"
)

// ClientServices wires the client-side sync stack together and binds it to
// the session lifecycle: sign-in authenticates, reconciles, and brings the
// live listener and the periodic job up; sign-out tears them down and clears
// the sync mirror while the favorites themselves stay on the device.
type ClientServices struct {
	Engine    SyncEngine
	Listener  RemoteListener
	Favorites FavoritesService
	SyncJob   SyncJob

	local   store.LocalStore
	remote  adapter.RemoteStore
	syncCfg config.ClientSync
	log     *logger.Logger

	sessionUnsub session.UnsubscribeFunc
}

func NewClientServices(localStore store.LocalStore, remoteStore adapter.RemoteStore, tracker *session.Tracker, syncCfg config.ClientSync, log *logger.Logger) *ClientServices {
	listener := NewRemoteListener(remoteStore, localStore, syncCfg, log)
	engine := NewSyncEngine(localStore, remoteStore, listener, log)
	favorites := NewFavoritesService(localStore, engine, listener, tracker, syncCfg.PushDebounce, log)

	cs := &ClientServices{
		Engine:    engine,
		Listener:  listener,
		Favorites: favorites,
		SyncJob:   NewClientSyncJob(engine),
		local:     localStore,
		remote:    remoteStore,
		syncCfg:   syncCfg,
		log:       log,
	}

	cs.sessionUnsub = tracker.OnChange(func(userID int64, signedIn bool) {
		if signedIn {
			cs.onSignIn(userID)
		} else {
			cs.onSignOut()
		}
	})

	return cs
}

// Close detaches the session binding and stops all background work.
func (cs *ClientServices) Close() {
	if cs.sessionUnsub != nil {
		cs.sessionUnsub()
	}
	cs.SyncJob.Stop()
	cs.Listener.Stop()
}

func (cs *ClientServices) onSignIn(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	if err := cs.remote.Authenticate(ctx, userID); err != nil {
		cs.log.Warn().Err(err).Int64("user_id", userID).Msg("authenticate on sign-in failed")
	}

	if err := cs.Engine.Reconcile(ctx, userID); err != nil {
		cs.log.Warn().Err(err).Int64("user_id", userID).Msg("reconcile on sign-in failed")
	}

	cs.Listener.Restart(userID)
	cs.SyncJob.Start(context.Background(), userID, cs.syncCfg.Interval)
}

func (cs *ClientServices) onSignOut() {
	cs.SyncJob.Stop()
	cs.Listener.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	if err := cs.local.ResetSyncState(ctx); err != nil {
		cs.log.Warn().Err(err).Msg("reset sync state on sign-out failed")
	}
}

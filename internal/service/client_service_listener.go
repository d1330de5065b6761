package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bunpo-app/bunpo/internal/adapter"
	"github.com/bunpo-app/bunpo/internal/config"
	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/internal/store"
	"github.com/bunpo-app/bunpo/models"
	"github.com/sethvargo/go-retry"
)

// ListenerState is the lifecycle state of the remote listener.
type ListenerState int

const (
	// ListenerStopped means no watch channel is open and none is pending.
	ListenerStopped ListenerState = iota
	// ListenerStarting means a watch channel is being established.
	ListenerStarting
	// ListenerListening means the watch channel is open and delivering.
	ListenerListening
	// ListenerRetryPending means the channel was lost and a reconnect is
	// scheduled.
	ListenerRetryPending
)

func (s ListenerState) String() string {
	switch s {
	case ListenerStopped:
		return "stopped"
	case ListenerStarting:
		return "starting"
	case ListenerListening:
		return "listening"
	case ListenerRetryPending:
		return "retry_pending"
	default:
		return "unknown"
	}
}

type listenerSubscriber struct {
	id int64
	fn RemoteUpdateFunc
}

type remoteListener struct {
	remote adapter.RemoteStore
	local  store.LocalStore
	log    *logger.Logger

	settleDelay time.Duration
	retryDelay  time.Duration

	mu     sync.Mutex
	state  ListenerState
	gen    uint64
	userID int64
	cancel context.CancelFunc

	nextSubID   int64
	subscribers []listenerSubscriber

	suspended   bool
	resumeTimer *time.Timer
}

// NewRemoteListener creates a remoteListener over the given remote and local
// stores. The listener is idle until the first Subscribe call.
func NewRemoteListener(remote adapter.RemoteStore, local store.LocalStore, syncCfg config.ClientSync, log *logger.Logger) RemoteListener {
	return &remoteListener{
		remote:      remote,
		local:       local,
		log:         log,
		settleDelay: syncCfg.SettleDelay,
		retryDelay:  syncCfg.RetryDelay,
	}
}

// Subscribe implements RemoteListener. The first subscriber opens the watch
// channel; later subscribers share it and receive callbacks in registration
// order.
func (l *remoteListener) Subscribe(userID int64, fn RemoteUpdateFunc) UnsubscribeFunc {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextSubID++
	id := l.nextSubID
	l.subscribers = append(l.subscribers, listenerSubscriber{id: id, fn: fn})
	l.userID = userID

	if len(l.subscribers) == 1 && !l.suspended && l.state == ListenerStopped {
		l.startLocked(userID)
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.unsubscribe(id) })
	}
}

func (l *remoteListener) unsubscribe(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, sub := range l.subscribers {
		if sub.id == id {
			l.subscribers = append(l.subscribers[:i], l.subscribers[i+1:]...)
			break
		}
	}

	if len(l.subscribers) == 0 {
		l.stopTimerLocked()
		l.suspended = false
		l.stopLocked()
	}
}

// SuspendForWrite implements RemoteListener. The returned resume function
// schedules the channel to reopen settleDelay after the write completes,
// leaving a quiet window in which the write's own echo cannot come back.
func (l *remoteListener) SuspendForWrite() (resume func()) {
	l.mu.Lock()
	l.stopTimerLocked()
	l.stopLocked()
	l.suspended = true
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if !l.suspended {
			return
		}
		l.stopTimerLocked()
		l.resumeTimer = time.AfterFunc(l.settleDelay, l.resumeAfterSettle)
	}
}

func (l *remoteListener) resumeAfterSettle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.suspended {
		return
	}
	l.suspended = false
	l.resumeTimer = nil

	if len(l.subscribers) > 0 && l.state == ListenerStopped {
		l.startLocked(l.userID)
	}
}

// Stop implements RemoteListener. Subscribers stay registered so Restart can
// bring the channel back for them.
func (l *remoteListener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopTimerLocked()
	l.suspended = false
	l.stopLocked()
}

// Restart implements RemoteListener.
func (l *remoteListener) Restart(userID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopTimerLocked()
	l.suspended = false
	l.stopLocked()
	l.userID = userID

	if len(l.subscribers) > 0 {
		l.startLocked(userID)
	}
}

// State implements RemoteListener.
func (l *remoteListener) State() ListenerState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// startLocked launches the watch goroutine for userID. Caller must hold l.mu.
func (l *remoteListener) startLocked(userID int64) {
	l.gen++
	gen := l.gen

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.state = ListenerStarting

	go l.run(ctx, gen, userID)
}

// stopLocked cancels the active watch goroutine and invalidates its
// generation so late state updates from it are ignored. Caller must hold l.mu.
func (l *remoteListener) stopLocked() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
	l.state = ListenerStopped
}

func (l *remoteListener) stopTimerLocked() {
	if l.resumeTimer != nil {
		l.resumeTimer.Stop()
		l.resumeTimer = nil
	}
}

// run owns the watch channel for one generation. It reconnects at a constant
// interval until the context is cancelled.
func (l *remoteListener) run(ctx context.Context, gen uint64, userID int64) {
	backoff := retry.NewConstant(l.retryDelay)

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		events, err := l.remote.Watch(ctx, userID)
		if err != nil {
			l.transition(gen, ListenerRetryPending)
			l.log.Debug().Err(err).Int64("user_id", userID).Msg("watch channel dial failed, will retry")
			return retry.RetryableError(err)
		}

		l.transition(gen, ListenerListening)

		for ev := range events {
			l.deliver(ctx, gen, userID, ev)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		l.transition(gen, ListenerRetryPending)
		return retry.RetryableError(errors.New("watch channel closed"))
	})

	if err != nil && !errors.Is(err, context.Canceled) {
		l.log.Debug().Err(err).Int64("user_id", userID).Msg("watch loop exited")
	}
}

// transition moves the listener to state s unless the goroutine's generation
// has been superseded by a newer start or stop.
func (l *remoteListener) transition(gen uint64, s ListenerState) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		return
	}
	l.state = s
}

// deliver mirrors the remote state into the local store and fans it out to
// subscribers. Events from superseded generations are dropped.
func (l *remoteListener) deliver(ctx context.Context, gen uint64, userID int64, ev models.RecordEvent) {
	l.mu.Lock()
	if gen != l.gen {
		l.mu.Unlock()
		return
	}
	subs := make([]listenerSubscriber, len(l.subscribers))
	copy(subs, l.subscribers)
	l.mu.Unlock()

	if !ev.Exists {
		// The backend lost the record out from under the watch. Recreate an
		// empty one; the next reconcile merges the local favorites back in.
		record := models.MinimalUserRecord(userID, models.NewFavoriteSet(), models.Timestamp{})
		if err := l.remote.CreateRecord(ctx, record); err != nil && !errors.Is(err, adapter.ErrConflict) {
			l.log.Warn().Err(err).Int64("user_id", userID).Msg("recreate missing record")
		}
		return
	}

	if err := l.local.ReplaceFavorites(ctx, ev.Favorites); err != nil {
		l.log.Warn().Err(err).Msg("mirror remote favorites locally")
	}
	if err := l.local.SetLastModified(ctx, ev.Modified); err != nil {
		l.log.Warn().Err(err).Msg("mirror remote timestamp locally")
	}

	favorites := ev.Favorites.Clone()
	for _, sub := range subs {
		sub.fn(favorites, ev.Modified)
	}
}

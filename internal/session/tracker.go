// Package session tracks the authenticated user of the current device
// session and notifies interested components when it changes.
//
// The remote favorites service only exposes an opaque signed-in user with a
// stable identifier, so the tracker carries nothing beyond that identifier
// and a signed-in flag. Components that need to react to sign-in/sign-out
// (the sync engine's live listener in particular) register a callback via
// [Tracker.OnChange] and receive an explicit unsubscribe handle back.
package session

import (
	"sync"

	"github.com/bunpo-app/bunpo/internal/logger"
)

// ChangeFunc is invoked on every sign-in and sign-out. userID is only
// meaningful when signedIn is true.
type ChangeFunc func(userID int64, signedIn bool)

// UnsubscribeFunc removes a previously registered ChangeFunc. It is safe to
// call more than once.
type UnsubscribeFunc func()

type watcher struct {
	id uint64
	fn ChangeFunc
}

// Tracker holds the current session state and a set of change watchers.
// Watchers are dispatched synchronously in registration order, so a
// component registered before another always observes a change first.
type Tracker struct {
	logger *logger.Logger

	mu       sync.Mutex
	userID   int64
	signedIn bool
	nextID   uint64
	watchers []watcher
}

// NewTracker constructs a Tracker with no active session.
func NewTracker(log *logger.Logger) *Tracker {
	return &Tracker{logger: log}
}

// CurrentUserID returns the identifier of the signed-in user and true, or
// zero and false when no session is active.
func (t *Tracker) CurrentUserID() (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.userID, t.signedIn
}

// SignIn records userID as the active session and notifies watchers.
// Signing in while already signed in as the same user is a no-op.
func (t *Tracker) SignIn(userID int64) {
	t.mu.Lock()
	if t.signedIn && t.userID == userID {
		t.mu.Unlock()
		return
	}
	t.userID = userID
	t.signedIn = true
	watchers := t.snapshotLocked()
	t.mu.Unlock()

	t.logger.Info().Int64("user_id", userID).Msg("session signed in")
	for _, w := range watchers {
		w.fn(userID, true)
	}
}

// SignOut clears the active session and notifies watchers. Calling SignOut
// with no active session is a no-op.
func (t *Tracker) SignOut() {
	t.mu.Lock()
	if !t.signedIn {
		t.mu.Unlock()
		return
	}
	userID := t.userID
	t.userID = 0
	t.signedIn = false
	watchers := t.snapshotLocked()
	t.mu.Unlock()

	t.logger.Info().Int64("user_id", userID).Msg("session signed out")
	for _, w := range watchers {
		w.fn(0, false)
	}
}

// OnChange registers fn to be called on every subsequent sign-in and
// sign-out. The returned handle removes the registration; it is idempotent.
func (t *Tracker) OnChange(fn ChangeFunc) UnsubscribeFunc {
	t.mu.Lock()
	t.nextID++
	id := t.nextID
	t.watchers = append(t.watchers, watcher{id: id, fn: fn})
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { t.remove(id) })
	}
}

func (t *Tracker) remove(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, w := range t.watchers {
		if w.id == id {
			t.watchers = append(t.watchers[:i], t.watchers[i+1:]...)
			return
		}
	}
}

// snapshotLocked copies the watcher list so callbacks run without holding the
// tracker lock. Callers must hold t.mu.
func (t *Tracker) snapshotLocked() []watcher {
	out := make([]watcher, len(t.watchers))
	copy(out, t.watchers)
	return out
}

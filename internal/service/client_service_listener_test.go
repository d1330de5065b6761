package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bunpo-app/bunpo/internal/adapter"
	"github.com/bunpo-app/bunpo/internal/config"
	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/internal/mock"
	"github.com/bunpo-app/bunpo/internal/store"
	"github.com/bunpo-app/bunpo/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testSettleDelay = 20 * time.Millisecond
	testRetryDelay  = 10 * time.Millisecond

	waitFor = 2 * time.Second
	tick    = 2 * time.Millisecond
)

// asEventStream converts a test-owned channel to the receive-only type the
// mocked Watch must return.
func asEventStream(ch chan models.RecordEvent) <-chan models.RecordEvent {
	return ch
}

// updateRecorder collects listener callbacks in arrival order.
type updateRecorder struct {
	mu      sync.Mutex
	updates []models.FavoriteSet
}

func (r *updateRecorder) fn(favorites models.FavoriteSet, _ models.Timestamp) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, favorites)
}

func (r *updateRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.updates)
}

func (r *updateRecorder) last() models.FavoriteSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.updates) == 0 {
		return nil
	}
	return r.updates[len(r.updates)-1]
}

func newTestListener(t *testing.T, ctrl *gomock.Controller) (*remoteListener, *mock.MockRemoteStore, store.LocalStore) {
	t.Helper()

	mockRemote := mock.NewMockRemoteStore(ctrl)
	local, err := store.NewLocalStore(":memory:", logger.Nop())
	require.NoError(t, err)

	syncCfg := config.ClientSync{SettleDelay: testSettleDelay, RetryDelay: testRetryDelay}
	l := NewRemoteListener(mockRemote, local, syncCfg, logger.Nop()).(*remoteListener)

	t.Cleanup(l.Stop)
	return l, mockRemote, local
}

// ── Subscribe / refcounting ──────────────────────────────────────────────────

func TestRemoteListener_FirstSubscriberOpensChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l, mockRemote, local := newTestListener(t, ctrl)
	userID := int64(1)

	events := make(chan models.RecordEvent, 1)
	mockRemote.EXPECT().Watch(gomock.Any(), userID).Return(asEventStream(events), nil)

	first := &updateRecorder{}
	second := &updateRecorder{}

	unsubFirst := l.Subscribe(userID, first.fn)
	defer unsubFirst()
	// The second subscriber shares the already-open channel: Watch is
	// expected exactly once.
	unsubSecond := l.Subscribe(userID, second.fn)
	defer unsubSecond()

	require.Eventually(t, func() bool { return l.State() == ListenerListening }, waitFor, tick)

	remoteFavs := models.NewFavoriteSet(7, 8)
	events <- models.RecordEvent{Exists: true, Favorites: remoteFavs, Modified: tsLater}

	require.Eventually(t, func() bool {
		return first.count() == 1 && second.count() == 1
	}, waitFor, tick)
	assert.True(t, remoteFavs.Equal(first.last()))
	assert.True(t, remoteFavs.Equal(second.last()))

	// The mirror follows the remote state.
	got, err := local.Favorites(context.Background())
	require.NoError(t, err)
	assert.True(t, remoteFavs.Equal(got))

	gotTS, err := local.LastModified(context.Background())
	require.NoError(t, err)
	assert.True(t, tsLater.Equal(gotTS))
}

func TestRemoteListener_LastUnsubscribeClosesChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l, mockRemote, _ := newTestListener(t, ctrl)
	userID := int64(1)

	events := make(chan models.RecordEvent)
	mockRemote.EXPECT().Watch(gomock.Any(), userID).Return(asEventStream(events), nil)

	rec := &updateRecorder{}
	unsubA := l.Subscribe(userID, rec.fn)
	unsubB := l.Subscribe(userID, rec.fn)

	require.Eventually(t, func() bool { return l.State() == ListenerListening }, waitFor, tick)

	unsubA()
	assert.Equal(t, ListenerListening, l.State(), "one subscriber remains")

	unsubB()
	assert.Equal(t, ListenerStopped, l.State())

	// Idempotent: a second call must not panic or double-release.
	unsubB()
	assert.Equal(t, ListenerStopped, l.State())
}

func TestRemoteListener_StaleEventsAfterStopAreDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l, mockRemote, _ := newTestListener(t, ctrl)
	userID := int64(1)

	events := make(chan models.RecordEvent, 1)
	mockRemote.EXPECT().Watch(gomock.Any(), userID).Return(asEventStream(events), nil)

	rec := &updateRecorder{}
	unsub := l.Subscribe(userID, rec.fn)
	defer unsub()

	require.Eventually(t, func() bool { return l.State() == ListenerListening }, waitFor, tick)

	l.Stop()

	// The old goroutine may still drain the channel, but its generation is
	// superseded: nothing may reach the subscriber.
	events <- models.RecordEvent{Exists: true, Favorites: models.NewFavoriteSet(1), Modified: tsLater}
	close(events)

	time.Sleep(5 * testRetryDelay)
	assert.Zero(t, rec.count())
	assert.Equal(t, ListenerStopped, l.State())
}

// ── Reconnect ────────────────────────────────────────────────────────────────

func TestRemoteListener_RetriesAfterDialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l, mockRemote, _ := newTestListener(t, ctrl)
	userID := int64(1)

	events := make(chan models.RecordEvent, 1)
	gomock.InOrder(
		mockRemote.EXPECT().Watch(gomock.Any(), userID).Return(nil, adapter.ErrUnavailable),
		mockRemote.EXPECT().Watch(gomock.Any(), userID).Return(asEventStream(events), nil),
	)

	rec := &updateRecorder{}
	unsub := l.Subscribe(userID, rec.fn)
	defer unsub()

	require.Eventually(t, func() bool { return l.State() == ListenerListening }, waitFor, tick)

	events <- models.RecordEvent{Exists: true, Favorites: models.NewFavoriteSet(2), Modified: tsLater}
	require.Eventually(t, func() bool { return rec.count() == 1 }, waitFor, tick)
}

func TestRemoteListener_ReconnectsWhenStreamCloses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l, mockRemote, _ := newTestListener(t, ctrl)
	userID := int64(1)

	first := make(chan models.RecordEvent)
	second := make(chan models.RecordEvent, 1)
	gomock.InOrder(
		mockRemote.EXPECT().Watch(gomock.Any(), userID).Return(asEventStream(first), nil),
		mockRemote.EXPECT().Watch(gomock.Any(), userID).Return(asEventStream(second), nil),
	)

	rec := &updateRecorder{}
	unsub := l.Subscribe(userID, rec.fn)
	defer unsub()

	require.Eventually(t, func() bool { return l.State() == ListenerListening }, waitFor, tick)

	// Simulate a dropped connection.
	close(first)

	require.Eventually(t, func() bool { return l.State() == ListenerListening }, waitFor, tick)

	second <- models.RecordEvent{Exists: true, Favorites: models.NewFavoriteSet(3), Modified: tsLater}
	require.Eventually(t, func() bool { return rec.count() == 1 }, waitFor, tick)
}

// ── Write suspension ─────────────────────────────────────────────────────────

func TestRemoteListener_SuspendForWrite_ReopensAfterSettleDelay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l, mockRemote, _ := newTestListener(t, ctrl)
	userID := int64(1)

	first := make(chan models.RecordEvent, 1)
	second := make(chan models.RecordEvent, 1)
	gomock.InOrder(
		mockRemote.EXPECT().Watch(gomock.Any(), userID).Return(asEventStream(first), nil),
		mockRemote.EXPECT().Watch(gomock.Any(), userID).Return(asEventStream(second), nil),
	)

	rec := &updateRecorder{}
	unsub := l.Subscribe(userID, rec.fn)
	defer unsub()

	require.Eventually(t, func() bool { return l.State() == ListenerListening }, waitFor, tick)

	resume := l.SuspendForWrite()
	assert.Equal(t, ListenerStopped, l.State())

	// An echo arriving during the quiet window is dropped with the old
	// generation.
	first <- models.RecordEvent{Exists: true, Favorites: models.NewFavoriteSet(9), Modified: tsLater}

	resume()
	// Still down until the settle delay elapses.
	assert.Equal(t, ListenerStopped, l.State())

	require.Eventually(t, func() bool { return l.State() == ListenerListening }, waitFor, tick)
	assert.Zero(t, rec.count(), "suspended window must swallow the echo")
}

func TestRemoteListener_SuspendForWrite_NoReopenWithoutSubscribers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l, mockRemote, _ := newTestListener(t, ctrl)
	userID := int64(1)

	events := make(chan models.RecordEvent)
	mockRemote.EXPECT().Watch(gomock.Any(), userID).Return(asEventStream(events), nil)

	rec := &updateRecorder{}
	unsub := l.Subscribe(userID, rec.fn)

	require.Eventually(t, func() bool { return l.State() == ListenerListening }, waitFor, tick)

	resume := l.SuspendForWrite()
	unsub()
	resume()

	time.Sleep(3 * testSettleDelay)
	assert.Equal(t, ListenerStopped, l.State(), "no subscribers left, nothing to resume for")
}

// ── Missing record self-heal ─────────────────────────────────────────────────

func TestRemoteListener_RecreatesMissingRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l, mockRemote, _ := newTestListener(t, ctrl)
	userID := int64(1)

	events := make(chan models.RecordEvent, 1)
	mockRemote.EXPECT().Watch(gomock.Any(), userID).Return(asEventStream(events), nil)

	created := make(chan struct{})
	mockRemote.EXPECT().
		CreateRecord(gomock.Any(), models.MinimalUserRecord(userID, models.NewFavoriteSet(), models.Timestamp{})).
		DoAndReturn(func(_ any, _ any) error {
			close(created)
			return nil
		})

	rec := &updateRecorder{}
	unsub := l.Subscribe(userID, rec.fn)
	defer unsub()

	events <- models.RecordEvent{Exists: false}

	select {
	case <-created:
	case <-time.After(waitFor):
		t.Fatal("expected the listener to recreate the missing record")
	}
	assert.Zero(t, rec.count(), "a missing-record event carries no state to deliver")
}

// ── Restart ──────────────────────────────────────────────────────────────────

func TestRemoteListener_RestartResumesForExistingSubscribers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l, mockRemote, _ := newTestListener(t, ctrl)

	first := make(chan models.RecordEvent)
	second := make(chan models.RecordEvent, 1)
	gomock.InOrder(
		mockRemote.EXPECT().Watch(gomock.Any(), int64(1)).Return(asEventStream(first), nil),
		mockRemote.EXPECT().Watch(gomock.Any(), int64(2)).Return(asEventStream(second), nil),
	)

	rec := &updateRecorder{}
	unsub := l.Subscribe(1, rec.fn)
	defer unsub()

	require.Eventually(t, func() bool { return l.State() == ListenerListening }, waitFor, tick)

	l.Stop()
	assert.Equal(t, ListenerStopped, l.State())

	// A different user signs in; the registered callbacks follow the new
	// session.
	l.Restart(2)
	require.Eventually(t, func() bool { return l.State() == ListenerListening }, waitFor, tick)

	second <- models.RecordEvent{Exists: true, Favorites: models.NewFavoriteSet(4), Modified: tsLater}
	require.Eventually(t, func() bool { return rec.count() == 1 }, waitFor, tick)
}

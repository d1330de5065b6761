package service

import (
	"context"
	"testing"
	"time"

	"github.com/bunpo-app/bunpo/internal/adapter"
	"github.com/bunpo-app/bunpo/internal/config"
	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/internal/mock"
	"github.com/bunpo-app/bunpo/internal/session"
	"github.com/bunpo-app/bunpo/internal/store"
	"github.com/bunpo-app/bunpo/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestClientServices(t *testing.T, ctrl *gomock.Controller) (*ClientServices, *mock.MockRemoteStore, *session.Tracker, store.LocalStore) {
	t.Helper()

	mockRemote := mock.NewMockRemoteStore(ctrl)
	local, err := store.NewLocalStore(":memory:", logger.Nop())
	require.NoError(t, err)
	tracker := session.NewTracker(logger.Nop())

	syncCfg := config.ClientSync{
		SettleDelay:  testSettleDelay,
		RetryDelay:   testRetryDelay,
		PushDebounce: testPushDebounce,
		Interval:     time.Hour, // keep the periodic job quiet during tests
	}

	cs := NewClientServices(local, mockRemote, tracker, syncCfg, logger.Nop())
	t.Cleanup(cs.Close)

	return cs, mockRemote, tracker, local
}

func TestClientServices_SignInAuthenticatesAndReconciles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cs, mockRemote, tracker, local := newTestClientServices(t, ctrl)
	ctx := context.Background()

	favs := models.NewFavoriteSet(1)
	require.NoError(t, local.AddFavorite(ctx, 1))

	// A fresh device with no sync history against a user with no backend
	// record: sign-in uploads the local favorites as the initial state.
	mockRemote.EXPECT().Authenticate(gomock.Any(), int64(42)).Return(nil)
	mockRemote.EXPECT().FetchRecord(gomock.Any(), int64(42)).Return(models.UserRecord{}, adapter.ErrNotFound)
	mockRemote.EXPECT().PutFavorites(gomock.Any(), int64(42), favs, gomock.Any()).Return(nil)

	tracker.SignIn(42)

	gotTS, err := local.LastModified(ctx)
	require.NoError(t, err)
	assert.False(t, gotTS.IsZero(), "successful initial push records a sync timestamp")

	assert.Equal(t, ListenerStopped, cs.Listener.State(), "no subscribers, no watch channel")
}

func TestClientServices_SignOutClearsSyncStateKeepsFavorites(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, mockRemote, tracker, local := newTestClientServices(t, ctrl)
	ctx := context.Background()

	require.NoError(t, local.AddFavorite(ctx, 1))
	favs := models.NewFavoriteSet(1)

	mockRemote.EXPECT().Authenticate(gomock.Any(), int64(42)).Return(nil)
	mockRemote.EXPECT().FetchRecord(gomock.Any(), int64(42)).Return(models.UserRecord{}, adapter.ErrNotFound)
	mockRemote.EXPECT().PutFavorites(gomock.Any(), int64(42), favs, gomock.Any()).Return(nil)

	tracker.SignIn(42)
	tracker.SignOut()

	gotTS, err := local.LastModified(ctx)
	require.NoError(t, err)
	assert.True(t, gotTS.IsZero(), "sign-out clears the sync mirror")

	got, err := local.Favorites(ctx)
	require.NoError(t, err)
	assert.True(t, favs.Equal(got), "favorites stay on the device after sign-out")
}

func TestClientServices_SignInRestartsListenerForSubscribers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cs, mockRemote, tracker, _ := newTestClientServices(t, ctrl)

	// First session.
	mockRemote.EXPECT().Authenticate(gomock.Any(), int64(42)).Return(nil)
	mockRemote.EXPECT().FetchRecord(gomock.Any(), int64(42)).Return(models.UserRecord{
		UserID:                42,
		Favorites:             models.NewFavoriteSet(),
		FavoritesLastModified: models.Timestamp{},
	}, nil)

	events := make(chan models.RecordEvent)
	mockRemote.EXPECT().Watch(gomock.Any(), int64(42)).Return(asEventStream(events), nil)

	tracker.SignIn(42)

	rec := &updateRecorder{}
	unsub, err := cs.Favorites.SubscribeRemote(rec.fn)
	require.NoError(t, err)
	defer unsub()

	require.Eventually(t, func() bool { return cs.Listener.State() == ListenerListening }, waitFor, tick)

	tracker.SignOut()
	assert.Equal(t, ListenerStopped, cs.Listener.State())
}

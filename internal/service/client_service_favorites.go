package service

import (
	"context"
	"sync"
	"time"

	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/internal/session"
	"github.com/bunpo-app/bunpo/internal/store"
	"github.com/bunpo-app/bunpo/models"
)

// pushTimeout bounds the background push fired by the debounce timer, which
// has no caller-supplied context.
const pushTimeout = 30 * time.Second

type favoritesService struct {
	local    store.LocalStore
	engine   SyncEngine
	listener RemoteListener
	session  *session.Tracker
	log      *logger.Logger

	pushDebounce time.Duration

	mu        sync.Mutex
	pushTimer *time.Timer
}

// NewFavoritesService creates the UI-facing favorites service. Local
// mutations take effect immediately; the backend push is debounced by
// syncCfg.PushDebounce so rapid toggling costs one request.
func NewFavoritesService(local store.LocalStore, engine SyncEngine, listener RemoteListener, tracker *session.Tracker, pushDebounce time.Duration, log *logger.Logger) FavoritesService {
	return &favoritesService{
		local:        local,
		engine:       engine,
		listener:     listener,
		session:      tracker,
		log:          log,
		pushDebounce: pushDebounce,
	}
}

// Toggle implements FavoritesService.
func (s *favoritesService) Toggle(ctx context.Context, grammarID int64) error {
	favorites, err := s.local.Favorites(ctx)
	if err != nil {
		return err
	}

	if favorites.Contains(grammarID) {
		err = s.local.RemoveFavorite(ctx, grammarID)
	} else {
		err = s.local.AddFavorite(ctx, grammarID)
	}
	if err != nil {
		return err
	}

	if err := s.local.SetLastModified(ctx, models.Now()); err != nil {
		return err
	}

	s.schedulePush()
	return nil
}

// IsFavorite implements FavoritesService.
func (s *favoritesService) IsFavorite(ctx context.Context, grammarID int64) (bool, error) {
	favorites, err := s.local.Favorites(ctx)
	if err != nil {
		return false, err
	}
	return favorites.Contains(grammarID), nil
}

// Favorites implements FavoritesService.
func (s *favoritesService) Favorites(ctx context.Context) ([]int64, error) {
	return s.local.OrderedFavorites(ctx)
}

// SubscribeRemote implements FavoritesService.
func (s *favoritesService) SubscribeRemote(fn RemoteUpdateFunc) (UnsubscribeFunc, error) {
	userID, ok := s.session.CurrentUserID()
	if !ok {
		return nil, ErrUnauthenticated
	}
	return s.listener.Subscribe(userID, fn), nil
}

// Flush implements FavoritesService.
func (s *favoritesService) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.pushTimer != nil {
		s.pushTimer.Stop()
		s.pushTimer = nil
	}
	s.mu.Unlock()

	userID, ok := s.session.CurrentUserID()
	if !ok {
		return nil
	}
	return s.engine.PushLocal(ctx, userID)
}

// Reconcile implements FavoritesService.
func (s *favoritesService) Reconcile(ctx context.Context) error {
	userID, ok := s.session.CurrentUserID()
	if !ok {
		return ErrUnauthenticated
	}
	return s.engine.Reconcile(ctx, userID)
}

// schedulePush arms (or re-arms) the debounce timer. The push itself runs on
// the timer goroutine with its own deadline.
func (s *favoritesService) schedulePush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pushTimer != nil {
		s.pushTimer.Stop()
	}
	s.pushTimer = time.AfterFunc(s.pushDebounce, s.pushNow)
}

func (s *favoritesService) pushNow() {
	s.mu.Lock()
	s.pushTimer = nil
	s.mu.Unlock()

	userID, ok := s.session.CurrentUserID()
	if !ok {
		// Signed out while the timer was pending; the local state stays on
		// the device and syncs on the next sign-in.
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	if err := s.engine.PushLocal(ctx, userID); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("debounced favorites push failed")
	}
}

package http

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/internal/store"
	"github.com/bunpo-app/bunpo/models"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
)

// watchHub fans record events out to the live websocket watchers of each
// user. Every favorites write and record creation is broadcast so that all
// of a user's devices converge without polling.
type watchHub struct {
	mu     sync.Mutex
	nextID int64
	subs   map[int64]map[int64]chan models.RecordEvent
}

func newWatchHub() *watchHub {
	return &watchHub{subs: make(map[int64]map[int64]chan models.RecordEvent)}
}

func (h *watchHub) subscribe(userID int64) (int64, <-chan models.RecordEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	ch := make(chan models.RecordEvent, 8)
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[int64]chan models.RecordEvent)
	}
	h.subs[userID][h.nextID] = ch

	return h.nextID, ch
}

func (h *watchHub) unsubscribe(userID, id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs := h.subs[userID]; subs != nil {
		delete(subs, id)
		if len(subs) == 0 {
			delete(h.subs, userID)
		}
	}
}

// broadcast delivers ev to every watcher of userID without blocking. A
// watcher whose buffer is full misses the event; the client's periodic
// reconcile covers the gap.
func (h *watchHub) broadcast(userID int64, ev models.RecordEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[userID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// watch upgrades the request to a websocket and streams [models.RecordEvent]
// frames for the path user: first a snapshot of the current document (with
// Exists=false when no record has been created yet), then one event per
// subsequent write. The stream ends when the client closes the connection.
func (h *Handler) watch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.CloseNow()

	// Subscribe before reading the snapshot so no write can land between
	// the snapshot and the live stream. A duplicate event right after the
	// snapshot is harmless; a missed one is not.
	id, events := h.hub.subscribe(userID)
	defer h.hub.unsubscribe(userID, id)

	var snapshot models.RecordEvent
	record, err := h.records.GetRecord(ctx, userID)
	switch {
	case err == nil:
		snapshot = models.RecordEvent{
			Exists:    true,
			Favorites: record.Favorites,
			Modified:  record.FavoritesLastModified,
		}
	case errors.Is(err, store.ErrUserRecordNotFound):
		// Exists stays false: the watcher learns there is nothing yet.
	default:
		log.Err(err).Int64("user_id", userID).Msg("error loading record snapshot")
		conn.Close(websocket.StatusInternalError, "record lookup failed")
		return
	}

	if err := wsjson.Write(ctx, conn, snapshot); err != nil {
		log.Debug().Err(err).Msg("watcher went away before snapshot")
		return
	}

	log.Debug().Int64("user_id", userID).Msg("watcher connected")

	// The client never sends data frames; CloseRead surfaces the close
	// handshake as context cancellation.
	readCtx := conn.CloseRead(ctx)

	for {
		select {
		case <-readCtx.Done():
			log.Debug().Int64("user_id", userID).Msg("watcher disconnected")
			return
		case ev := <-events:
			if err := wsjson.Write(ctx, conn, ev); err != nil {
				log.Debug().Err(err).Msg("error writing record event to watcher")
				return
			}
		}
	}
}

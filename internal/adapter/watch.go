package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bunpo-app/bunpo/models"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Watch implements [RemoteStore]. It dials the websocket watch endpoint for
// userID and pumps decoded [models.RecordEvent] values into the returned
// channel. The first event is a snapshot of the current record state.
//
// The channel is closed when the connection fails, the server closes it, or
// ctx is cancelled. Reconnecting is the caller's responsibility; the adapter
// reports a broken channel exactly once by closing it.
func (h *httpRemoteStore) Watch(ctx context.Context, userID int64) (<-chan models.RecordEvent, error) {
	wsURL := httpToWS(h.baseURL) + fmt.Sprintf("/api/users/%d/watch", userID)

	header := http.Header{}
	if token := h.Token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, _, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{HTTPHeader: header})
	if err != nil {
		return nil, fmt.Errorf("dial watch channel: %w: %w", ErrUnavailable, err)
	}

	events := make(chan models.RecordEvent)
	go h.readWatchEvents(ctx, conn, events)

	return events, nil
}

func (h *httpRemoteStore) readWatchEvents(ctx context.Context, conn *websocket.Conn, events chan<- models.RecordEvent) {
	defer close(events)
	defer conn.Close(websocket.StatusNormalClosure, "")

	for {
		var event models.RecordEvent
		if err := wsjson.Read(ctx, conn, &event); err != nil {
			if ctx.Err() == nil && !errors.As(err, new(websocket.CloseError)) {
				h.logger.Warn().Err(err).Msg("watch channel read failed")
			}
			return
		}

		select {
		case events <- event:
		case <-ctx.Done():
			return
		}
	}
}

// httpToWS rewrites an http(s) base URL into its ws(s) counterpart.
func httpToWS(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	default:
		return base
	}
}

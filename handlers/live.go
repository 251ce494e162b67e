// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/livetally/livetally/feed"
	"github.com/livetally/livetally/middleware"
	"github.com/livetally/livetally/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type LiveHandler struct {
	store *store.Store
	hub   *feed.Hub
}

func NewLiveHandler(s *store.Store, hub *feed.Hub) *LiveHandler {
	return &LiveHandler{store: s, hub: hub}
}

// Subscribe handles GET /polls/:id/live
// Upgrades to WebSocket and pushes one {poll_id, option_id} event per
// accepted vote until the client disconnects.
func (h *LiveHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	// Reject unknown polls before the upgrade so the client gets a
	// proper status code
	if _, err := h.store.GetPoll(r.Context(), pollID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
			return
		}
		slog.Error("failed to query poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err, "poll_id", pollID)
		return
	}
	defer conn.Close()

	// One subscription per connection; Close is idempotent so the
	// deferred teardown is safe no matter how the loops exit.
	subscriberID := uuid.NewString()
	sub := h.hub.Subscribe(pollID, subscriberID)
	defer sub.Close()

	slog.Info("live subscriber connected", "poll_id", pollID, "subscriber", subscriberID)

	// Reader: only watches for the client going away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Warn("websocket read error", "error", err, "poll_id", pollID)
				}
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				slog.Warn("websocket write error", "error", err, "poll_id", pollID)
				return
			}
		case <-closed:
			slog.Info("live subscriber disconnected", "poll_id", pollID, "subscriber", subscriberID)
			return
		}
	}
}

// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/livetally/livetally/middleware"
	"github.com/livetally/livetally/store"
)

type ResultsHandler struct {
	store *store.Store
}

func NewResultsHandler(s *store.Store) *ResultsHandler {
	return &ResultsHandler{store: s}
}

// GetPoll handles GET /polls/:id
// Returns the poll and its options for initial render.
func (h *ResultsHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	poll, err := h.store.GetPoll(r.Context(), pollID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// GetResults handles GET /polls/:id/results
// Returns the current tally snapshot: per-option counts plus total.
// Used for initial render and for viewer reconciliation pulls.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	snap, err := h.store.Snapshot(r.Context(), pollID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to aggregate results", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, snap)
}

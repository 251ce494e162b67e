// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/livetally/livetally/cliparse"
	"github.com/livetally/livetally/feed"
	"github.com/livetally/livetally/gate"
	"github.com/livetally/livetally/handlers"
	"github.com/livetally/livetally/middleware"
	"github.com/livetally/livetally/store"
)

func NewRouter(db *sql.DB, hub *feed.Hub, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	s := store.New(db)
	g := gate.New(s, hub)

	votingHandler := handlers.NewVotingHandler(g, cfg)
	resultsHandler := handlers.NewResultsHandler(s)
	liveHandler := handlers.NewLiveHandler(s, hub)
	healthHandler := handlers.NewHealthHandler()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Voting (public)
	mux.HandleFunc("POST /polls/{id}/vote", middleware.WithLogging(votingHandler.SubmitVote))

	// Poll info and tallies (public)
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(resultsHandler.GetPoll))
	mux.HandleFunc("GET /polls/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Live tally feed (WebSocket; logging middleware would hold the
	// connection's log entry open for its whole lifetime)
	mux.HandleFunc("GET /polls/{id}/live", liveHandler.Subscribe)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("livetally API v1"))
	})

	return mux
}

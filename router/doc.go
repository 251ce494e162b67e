// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the LiveTally API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, hub, cfg)

# Endpoints

Health:

	GET /health

Voting (public):

	POST /polls/{id}/vote - Submit a vote

Tallies (public):

	GET /polls/{id}         - Poll info and options
	GET /polls/{id}/results - Tally snapshot
	GET /polls/{id}/live    - WebSocket change feed

# Handler Initialization

The router wires the store and the admission gate to the shared change
feed hub, then injects them into the handlers:

	s := store.New(db)
	g := gate.New(s, hub)

Poll authoring has no routes here; polls and options are created by an
external collaborator writing to the same database.
*/
package router

// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the LiveTally API server.

LiveTally runs single-question polls with live-updating tallies. Each
participant gets one vote per poll, enforced by a three-layer duplicate
detection pipeline (cookie marker, address hash, fingerprint hash);
every viewer of a poll sees new votes arrive over a per-poll change
feed without refreshing.

# Starting the Server

The server requires environment variables or CLI flags for
configuration:

	DATABASE_URL=postgres://... ADDRESS_SALT=... go run main.go

Or with flags:

	go run main.go -p 3419 -d "file:livetally.db" -t sqlite -address-salt secret

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string or sqlite path
  - ADDRESS_SALT (-address-salt): Secret for address hash HMAC

Optional settings:

  - PORT (-p): Server port (default: 3419)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - identity: the two low-trust voter identity signals
  - gate: vote admission pipeline (validation, duplicate layers, commit)
  - store: vote ledger and tally aggregation
  - feed: per-poll change feed fan-out
  - projection: viewer-side incremental tally view and reconciliation
  - handlers: HTTP request handlers (voting, results, live, health)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response types
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main

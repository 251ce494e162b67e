// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the LiveTally API.

# Handler Types

Each handler is a struct with its dependencies injected via a
constructor:

  - VotingHandler: vote submission through the admission gate
  - ResultsHandler: poll info and tally snapshots
  - LiveHandler: WebSocket change-feed subscriptions
  - HealthHandler: liveness

# Voting Flow

	POST /polls/{id}/vote → SubmitVote

The body carries option_id and the client-computed fingerprint; the
address is taken from the transport. Status mapping:

	201 vote accepted (Set-Cookie: voted_<id>, one year)
	400 validation failure or option not in poll
	403 already voted (any duplicate layer)
	404 poll not found
	500 storage failure

# Reading Tallies

	GET /polls/{id}         → GetPoll (poll + options)
	GET /polls/{id}/results → GetResults ({counts, total})

GetResults is also the reconciliation pull for live viewers.

# Live Feed

	GET /polls/{id}/live → Subscribe (WebSocket)

One JSON event {poll_id, option_id} per accepted vote. Delivery is
best-effort; clients are expected to re-pull results after reconnects.
*/
package handlers

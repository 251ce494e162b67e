// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmitVoteRequest: option_id, fingerprint

# Response Types

Types for JSON responses:

  - SubmitVoteResponse: vote, message
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Poll: immutable poll metadata (question, author, creation time)
  - Option: voting option belonging to exactly one poll
  - Vote: append-only ledger row carrying the two identity hashes
  - TallySnapshot: consistent per-option counts plus total

Votes never expose their address or fingerprint hashes over JSON; both
fields are marshalling-excluded.
*/
package models

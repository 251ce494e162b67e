// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the authoritative vote ledger and tally aggregate.

# Operations

	s := store.New(conn)
	poll, err := s.GetPoll(ctx, pollID)
	voted, err := s.HasVoted(ctx, pollID, addrHash, fpHash)
	err = s.InsertVote(ctx, vote)
	snap, err := s.Snapshot(ctx, pollID)

# Atomicity

InsertVote is the single atomic unit of the admission pipeline: the
schema's UNIQUE pairs on (poll_id, address_hash) and
(poll_id, fingerprint_hash) decide races, and a violation comes back as
ErrDuplicateVote. HasVoted is only a cheap pre-probe so the common
repeat-voter case never reaches the insert.

# Snapshots

Snapshot runs one aggregate statement (option LEFT JOIN vote), so a
concurrent writer is either fully visible or not visible at all - never
a half-applied vote. There is no stored counter to drift; every tally
is recomputed from vote rows.

# Drivers

Works against postgres (github.com/lib/pq) and sqlite
(modernc.org/sqlite). Unique violations are recognized per driver:
pq error class 23505, sqlite constraint error text.
*/
package store

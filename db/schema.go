// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema is shared between sqlite and postgres: no engine-specific
// defaults, timestamps always supplied by the application.
const schema = `
-- Polls (created by the authoring subsystem; read-only here)
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    author_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Options (fixed at poll creation)
CREATE TABLE IF NOT EXISTS option (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    text TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_option_poll_id ON option(poll_id);

-- Vote ledger (append-only). The two UNIQUE pairs are the atomic
-- enforcement of one-vote-per-identity-signal per poll: a racing
-- duplicate insert fails the constraint instead of committing.
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    option_id TEXT NOT NULL REFERENCES option(id) ON DELETE CASCADE,
    address_hash TEXT NOT NULL,
    fingerprint_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (poll_id, address_hash),
    UNIQUE (poll_id, fingerprint_hash)
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
CREATE INDEX IF NOT EXISTS idx_vote_option_id ON vote(option_id);
`

// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - poll: Immutable poll metadata
  - option: Voting options per poll
  - vote: Append-only vote ledger with identity hashes

# Relationships

	poll 1──* option
	poll 1──* vote
	option 1──* vote

All foreign keys use ON DELETE CASCADE.

# Uniqueness

Duplicate-vote enforcement lives in the schema, not in application
locks:

  - vote.(poll_id, address_hash) UNIQUE
  - vote.(poll_id, fingerprint_hash) UNIQUE

Two concurrent submissions sharing either hash race on the constraint;
exactly one insert commits. There is no stored tally: counts are always
aggregated from vote rows at read time.
*/
package db

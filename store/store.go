// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/livetally/livetally/models"
)

var (
	// ErrNotFound is returned when a poll does not exist.
	ErrNotFound = errors.New("poll not found")
	// ErrDuplicateVote is returned when an insert loses the uniqueness
	// race on (poll_id, address_hash) or (poll_id, fingerprint_hash).
	ErrDuplicateVote = errors.New("duplicate vote")
)

// Store is the authoritative vote ledger and tally aggregate, backed by
// database/sql (postgres via lib/pq, or sqlite via modernc).
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetPoll returns a poll and its full option set, or ErrNotFound.
func (s *Store) GetPoll(ctx context.Context, pollID string) (*models.PollWithOptions, error) {
	var poll models.Poll
	err := s.db.QueryRowContext(ctx, `
		SELECT id, question, author_id, created_at FROM poll WHERE id = $1
	`, pollID).Scan(&poll.ID, &poll.Question, &poll.AuthorID, &poll.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, poll_id, text FROM option WHERE poll_id = $1 ORDER BY id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	return &models.PollWithOptions{Poll: poll, Options: options}, nil
}

// HasVoted reports whether any vote on the poll already carries either
// identity hash. This is the cheap pre-insert probe; the UNIQUE
// constraints in the schema remain the atomic authority under races.
func (s *Store) HasVoted(ctx context.Context, pollID, addressHash, fingerprintHash string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM vote
			WHERE poll_id = $1 AND (address_hash = $2 OR fingerprint_hash = $3)
		)
	`, pollID, addressHash, fingerprintHash).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to probe for duplicate vote: %w", err)
	}
	return exists, nil
}

// InsertVote appends one row to the vote ledger. A uniqueness violation
// on either identity hash is surfaced as ErrDuplicateVote rather than a
// generic storage error; callers treat it as the race-loser path.
func (s *Store) InsertVote(ctx context.Context, v *models.Vote) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote (id, poll_id, option_id, address_hash, fingerprint_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, v.ID, v.PollID, v.OptionID, v.AddressHash, v.FingerprintHash, v.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateVote
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

// Snapshot aggregates the ledger into per-option counts plus total for
// one poll. A single statement keeps the result consistent at one point
// in time; options with no votes appear with a zero count. Total is the
// sum of the returned counts by construction.
func (s *Store) Snapshot(ctx context.Context, pollID string) (models.TallySnapshot, error) {
	snap := models.TallySnapshot{Counts: map[string]int{}}

	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, COUNT(v.id)
		FROM option o
		LEFT JOIN vote v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id
	`, pollID)
	if err != nil {
		return snap, fmt.Errorf("failed to aggregate tallies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var optionID string
		var count int
		if err := rows.Scan(&optionID, &count); err != nil {
			return snap, fmt.Errorf("failed to scan tally row: %w", err)
		}
		snap.Counts[optionID] = count
		snap.Total += count
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("failed to read tally rows: %w", err)
	}

	if len(snap.Counts) == 0 {
		return snap, ErrNotFound
	}
	return snap, nil
}

// isUniqueViolation recognizes constraint errors from both supported
// drivers: pq surfaces class 23505, modernc sqlite only an error string.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed")
}

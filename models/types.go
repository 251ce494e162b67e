// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type SubmitVoteRequest struct {
	OptionID    string `json:"option_id"`
	Fingerprint string `json:"fingerprint"`
}

// Response types

type SubmitVoteResponse struct {
	Vote    Vote   `json:"vote"`
	Message string `json:"message"`
}

// Domain types

type Poll struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Option struct {
	ID     string `json:"id"`
	PollID string `json:"poll_id"`
	Text   string `json:"text"`
}

type PollWithOptions struct {
	Poll    Poll     `json:"poll"`
	Options []Option `json:"options"`
}

type Vote struct {
	ID              string    `json:"id"`
	PollID          string    `json:"poll_id"`
	OptionID        string    `json:"option_id"`
	AddressHash     string    `json:"-"` // Never expose in JSON
	FingerprintHash string    `json:"-"` // Never expose in JSON
	CreatedAt       time.Time `json:"created_at"`
}

// TallySnapshot is a consistent point-in-time aggregate of the vote ledger
// for one poll. Counts covers every option of the poll, including options
// with zero votes, and Total is always the sum over Counts.
type TallySnapshot struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

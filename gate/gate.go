// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/livetally/livetally/identity"
	"github.com/livetally/livetally/models"
	"github.com/livetally/livetally/store"
)

// Kind classifies why a submission was rejected.
type Kind string

const (
	KindValidation    Kind = "validation_failed"
	KindPollNotFound  Kind = "poll_not_found"
	KindInvalidOption Kind = "invalid_option"
	KindAlreadyVoted  Kind = "already_voted"
	KindStorage       Kind = "storage_failure"
)

// Rejection is the single tagged result for every failed submission.
// Layer records which duplicate layer fired ("cookie", "ledger" or
// "constraint"); it is logged for observability but callers only ever
// branch on Kind.
type Rejection struct {
	Kind   Kind
	Layer  string
	Detail string
}

func (r *Rejection) Error() string {
	if r.Detail != "" {
		return string(r.Kind) + ": " + r.Detail
	}
	return string(r.Kind)
}

// SubmitRequest carries one vote submission through the gate. Both
// hashes come from identity.Extract; HasVotedCookie reflects whether
// the caller presented the per-poll marker.
type SubmitRequest struct {
	PollID          string
	OptionID        string
	FingerprintHash string
	AddressHash     string
	HasVotedCookie  bool
}

// Storage is the slice of the vote store the gate needs. Narrow on
// purpose: tests inject fault-raising implementations to prove which
// checks touch storage.
type Storage interface {
	GetPoll(ctx context.Context, pollID string) (*models.PollWithOptions, error)
	HasVoted(ctx context.Context, pollID, addressHash, fingerprintHash string) (bool, error)
	InsertVote(ctx context.Context, v *models.Vote) error
}

// Publisher receives one event per accepted vote.
type Publisher interface {
	Publish(pollID, optionID string)
}

// Gate is the admission-control pipeline. Stateless; safe for
// concurrent use by any number of handler goroutines.
type Gate struct {
	store Storage
	feed  Publisher
}

func New(s Storage, f Publisher) *Gate {
	return &Gate{store: s, feed: f}
}

// Submit runs the ordered admission checks and, on acceptance, commits
// the vote and publishes it on the change feed. Checks short-circuit on
// first failure, cheapest first; nothing before the existence check
// reads storage. Rejections are terminal - no internal retry.
func (g *Gate) Submit(ctx context.Context, req SubmitRequest) (*models.Vote, *Rejection) {
	// Shape validation: no storage access
	if req.PollID == "" {
		return nil, &Rejection{Kind: KindValidation, Detail: "poll_id is required"}
	}
	if req.OptionID == "" {
		return nil, &Rejection{Kind: KindValidation, Detail: "option_id is required"}
	}
	if req.FingerprintHash == "" || req.AddressHash == "" {
		return nil, &Rejection{Kind: KindValidation, Detail: "identity signals missing"}
	}

	// Cookie layer: convenience fast-path, still no storage access
	if req.HasVotedCookie {
		slog.Info("vote rejected", "poll_id", req.PollID, "kind", KindAlreadyVoted, "layer", "cookie")
		return nil, &Rejection{Kind: KindAlreadyVoted, Layer: "cookie"}
	}

	// Existence checks
	poll, err := g.store.GetPoll(ctx, req.PollID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &Rejection{Kind: KindPollNotFound}
	}
	if err != nil {
		slog.Error("failed to load poll", "error", err, "poll_id", req.PollID)
		return nil, &Rejection{Kind: KindStorage, Detail: "failed to load poll"}
	}

	optionValid := false
	for _, opt := range poll.Options {
		if opt.ID == req.OptionID {
			optionValid = true
			break
		}
	}
	if !optionValid {
		return nil, &Rejection{Kind: KindInvalidOption, Detail: "option does not belong to poll"}
	}

	// Hard uniqueness probe against the ledger
	voted, err := g.store.HasVoted(ctx, req.PollID, req.AddressHash, req.FingerprintHash)
	if err != nil {
		slog.Error("duplicate probe failed", "error", err, "poll_id", req.PollID)
		return nil, &Rejection{Kind: KindStorage, Detail: "duplicate check failed"}
	}
	if voted {
		slog.Info("vote rejected", "poll_id", req.PollID, "kind", KindAlreadyVoted, "layer", "ledger")
		return nil, &Rejection{Kind: KindAlreadyVoted, Layer: "ledger"}
	}

	// Atomic commit: the unique constraints decide any race the probe
	// missed, so two concurrent submissions sharing a hash cannot both
	// land here and both succeed.
	vote := &models.Vote{
		ID:              identity.NewVoteID(),
		PollID:          req.PollID,
		OptionID:        req.OptionID,
		AddressHash:     req.AddressHash,
		FingerprintHash: req.FingerprintHash,
		CreatedAt:       time.Now(),
	}
	if err := g.store.InsertVote(ctx, vote); err != nil {
		if errors.Is(err, store.ErrDuplicateVote) {
			slog.Info("vote rejected", "poll_id", req.PollID, "kind", KindAlreadyVoted, "layer", "constraint")
			return nil, &Rejection{Kind: KindAlreadyVoted, Layer: "constraint"}
		}
		slog.Error("failed to commit vote", "error", err, "poll_id", req.PollID)
		return nil, &Rejection{Kind: KindStorage, Detail: "failed to record vote"}
	}

	g.feed.Publish(vote.PollID, vote.OptionID)
	slog.Info("vote accepted", "poll_id", vote.PollID, "option_id", vote.OptionID, "vote_id", vote.ID)

	return vote, nil
}

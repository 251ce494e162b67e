// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gate

import (
	"context"
	"sync"
	"testing"

	"github.com/livetally/livetally/models"
	"github.com/livetally/livetally/store"
)

// stubStorage serves a single poll from memory and lets each method be
// overridden per test.
type stubStorage struct {
	poll        *models.PollWithOptions
	getPollErr  error
	hasVoted    bool
	hasVotedErr error
	insertErr   error
	inserted    []*models.Vote
}

func (s *stubStorage) GetPoll(ctx context.Context, pollID string) (*models.PollWithOptions, error) {
	if s.getPollErr != nil {
		return nil, s.getPollErr
	}
	if s.poll == nil || s.poll.Poll.ID != pollID {
		return nil, store.ErrNotFound
	}
	return s.poll, nil
}

func (s *stubStorage) HasVoted(ctx context.Context, pollID, a, f string) (bool, error) {
	return s.hasVoted, s.hasVotedErr
}

func (s *stubStorage) InsertVote(ctx context.Context, v *models.Vote) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, v)
	return nil
}

// faultStorage fails the test on any call; used to prove which checks
// never touch storage.
type faultStorage struct {
	t *testing.T
}

func (s *faultStorage) GetPoll(ctx context.Context, pollID string) (*models.PollWithOptions, error) {
	s.t.Error("GetPoll called during a storage-free check")
	return nil, store.ErrNotFound
}

func (s *faultStorage) HasVoted(ctx context.Context, pollID, a, f string) (bool, error) {
	s.t.Error("HasVoted called during a storage-free check")
	return false, nil
}

func (s *faultStorage) InsertVote(ctx context.Context, v *models.Vote) error {
	s.t.Error("InsertVote called during a storage-free check")
	return nil
}

type recordingFeed struct {
	mu     sync.Mutex
	events []string
}

func (f *recordingFeed) Publish(pollID, optionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, pollID+"/"+optionID)
}

func testPoll() *models.PollWithOptions {
	return &models.PollWithOptions{
		Poll: models.Poll{ID: "p1", Question: "Best color?"},
		Options: []models.Option{
			{ID: "red", PollID: "p1", Text: "Red"},
			{ID: "blue", PollID: "p1", Text: "Blue"},
		},
	}
}

func validRequest() SubmitRequest {
	return SubmitRequest{
		PollID:          "p1",
		OptionID:        "red",
		FingerprintHash: "f1",
		AddressHash:     "a1",
	}
}

func TestSubmit_RejectionKinds(t *testing.T) {
	tests := []struct {
		name     string
		storage  Storage
		mutate   func(*SubmitRequest)
		wantKind Kind
	}{
		{
			name:     "missing poll id",
			storage:  &faultStorage{t: t},
			mutate:   func(r *SubmitRequest) { r.PollID = "" },
			wantKind: KindValidation,
		},
		{
			name:     "missing option id",
			storage:  &faultStorage{t: t},
			mutate:   func(r *SubmitRequest) { r.OptionID = "" },
			wantKind: KindValidation,
		},
		{
			name:     "missing fingerprint",
			storage:  &faultStorage{t: t},
			mutate:   func(r *SubmitRequest) { r.FingerprintHash = "" },
			wantKind: KindValidation,
		},
		{
			name:     "cookie marker short-circuits before storage",
			storage:  &faultStorage{t: t},
			mutate:   func(r *SubmitRequest) { r.HasVotedCookie = true },
			wantKind: KindAlreadyVoted,
		},
		{
			name:     "unknown poll",
			storage:  &stubStorage{poll: testPoll()},
			mutate:   func(r *SubmitRequest) { r.PollID = "other" },
			wantKind: KindPollNotFound,
		},
		{
			name:     "option from another poll",
			storage:  &stubStorage{poll: testPoll()},
			mutate:   func(r *SubmitRequest) { r.OptionID = "green" },
			wantKind: KindInvalidOption,
		},
		{
			name:     "ledger already has this identity",
			storage:  &stubStorage{poll: testPoll(), hasVoted: true},
			mutate:   func(r *SubmitRequest) {},
			wantKind: KindAlreadyVoted,
		},
		{
			name:     "constraint race loser",
			storage:  &stubStorage{poll: testPoll(), insertErr: store.ErrDuplicateVote},
			mutate:   func(r *SubmitRequest) {},
			wantKind: KindAlreadyVoted,
		},
		{
			name:     "storage fault on insert",
			storage:  &stubStorage{poll: testPoll(), insertErr: context.DeadlineExceeded},
			mutate:   func(r *SubmitRequest) {},
			wantKind: KindStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := &recordingFeed{}
			g := New(tt.storage, feed)

			req := validRequest()
			tt.mutate(&req)

			vote, rej := g.Submit(context.Background(), req)
			if vote != nil {
				t.Fatalf("expected rejection, got vote %+v", vote)
			}
			if rej.Kind != tt.wantKind {
				t.Errorf("rejection kind = %s, want %s", rej.Kind, tt.wantKind)
			}
			if len(feed.events) != 0 {
				t.Error("rejected submission must not publish to the feed")
			}
		})
	}
}

func TestSubmit_Accepted(t *testing.T) {
	storage := &stubStorage{poll: testPoll()}
	feed := &recordingFeed{}
	g := New(storage, feed)

	vote, rej := g.Submit(context.Background(), validRequest())
	if rej != nil {
		t.Fatalf("Submit() rejected: %v", rej)
	}
	if vote.ID == "" {
		t.Error("accepted vote has no ID")
	}
	if vote.PollID != "p1" || vote.OptionID != "red" {
		t.Errorf("vote = %+v", vote)
	}
	if vote.AddressHash != "a1" || vote.FingerprintHash != "f1" {
		t.Error("identity hashes not carried onto the vote")
	}

	if len(storage.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(storage.inserted))
	}
	if len(feed.events) != 1 || feed.events[0] != "p1/red" {
		t.Errorf("feed events = %v, want [p1/red]", feed.events)
	}
}

func TestSubmit_RejectionLayerPreserved(t *testing.T) {
	// The three duplicate layers collapse to one kind for callers, but
	// the layer stays on the rejection for logs.
	g := New(&stubStorage{poll: testPoll(), hasVoted: true}, &recordingFeed{})
	_, rej := g.Submit(context.Background(), validRequest())
	if rej.Kind != KindAlreadyVoted || rej.Layer != "ledger" {
		t.Errorf("rejection = %+v, want already_voted/ledger", rej)
	}

	req := validRequest()
	req.HasVotedCookie = true
	_, rej = g.Submit(context.Background(), req)
	if rej.Layer != "cookie" {
		t.Errorf("layer = %q, want cookie", rej.Layer)
	}

	g = New(&stubStorage{poll: testPoll(), insertErr: store.ErrDuplicateVote}, &recordingFeed{})
	_, rej = g.Submit(context.Background(), validRequest())
	if rej.Layer != "constraint" {
		t.Errorf("layer = %q, want constraint", rej.Layer)
	}
}

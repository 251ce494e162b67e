// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package projection

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/livetally/livetally/feed"
	"github.com/livetally/livetally/models"
)

// SnapshotFunc pulls an authoritative tally snapshot, typically
// store.Snapshot or a GET /polls/{id}/results round trip.
type SnapshotFunc func(ctx context.Context, pollID string) (models.TallySnapshot, error)

// Viewer ties one poll's projection to its event stream. Events are
// applied one at a time from a single subscription, so the projection
// advances in arrival order; reads may happen from other goroutines
// through the Projection's own lock.
type Viewer struct {
	PollID     string
	Projection *Projection

	markers  MarkerStore
	snapshot SnapshotFunc
}

func NewViewer(pollID string, markers MarkerStore, snapshot SnapshotFunc) *Viewer {
	return &Viewer{
		PollID:     pollID,
		Projection: New(),
		markers:    markers,
		snapshot:   snapshot,
	}
}

// Seed performs the initial authoritative pull.
func (v *Viewer) Seed(ctx context.Context) error {
	return v.Reconcile(ctx)
}

// Reconcile re-pulls the snapshot and replaces the projection state.
// Mandatory after any resubscribe and on a periodic interval: the feed
// may silently drop events across a disconnect, and the projection is
// only ever a cache of the store.
func (v *Viewer) Reconcile(ctx context.Context) error {
	snap, err := v.snapshot(ctx, v.PollID)
	if err != nil {
		return fmt.Errorf("reconciliation pull failed: %w", err)
	}
	v.Projection.Seed(snap)
	return nil
}

// HasVoted reports the persisted per-poll marker.
func (v *Viewer) HasVoted() bool {
	return v.markers.HasVoted(v.PollID)
}

// MarkVoted persists the marker after an accepted submission. Never
// cleared afterwards.
func (v *Viewer) MarkVoted() error {
	return v.markers.MarkVoted(v.PollID)
}

// Consume applies events from sub until ctx is cancelled or the
// subscription closes, reconciling every reconcileEvery (disabled when
// zero). Blocks; run it on the viewer's goroutine.
func (v *Viewer) Consume(ctx context.Context, sub *feed.Subscription, reconcileEvery time.Duration) {
	var tick <-chan time.Time
	if reconcileEvery > 0 {
		ticker := time.NewTicker(reconcileEvery)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			v.Projection.Apply(ev.OptionID)
		case <-tick:
			if err := v.Reconcile(ctx); err != nil {
				slog.Warn("periodic reconciliation failed", "poll_id", v.PollID, "error", err)
			}
		}
	}
}

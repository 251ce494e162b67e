// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package projection

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/livetally/livetally/feed"
	"github.com/livetally/livetally/models"
)

func TestProjection_SeedAndApply(t *testing.T) {
	p := New()
	p.Seed(models.TallySnapshot{Counts: map[string]int{"red": 1, "blue": 1}, Total: 2})

	p.Apply("red")

	if p.Count("red") != 2 || p.Count("blue") != 1 {
		t.Errorf("counts = %v, want red:2 blue:1", p.Counts())
	}
	if p.Total() != 3 {
		t.Errorf("total = %d, want 3", p.Total())
	}

	// Re-seeding replaces, never merges
	p.Seed(models.TallySnapshot{Counts: map[string]int{"red": 5}, Total: 5})
	if p.Count("blue") != 0 || p.Total() != 5 {
		t.Errorf("re-seed did not replace state: %v total %d", p.Counts(), p.Total())
	}
}

func TestProjection_Percent(t *testing.T) {
	p := New()

	// Zero total: every option renders 0
	if got := p.Percent("red"); got != 0 {
		t.Errorf("Percent() on empty projection = %f, want 0", got)
	}

	p.Seed(models.TallySnapshot{Counts: map[string]int{"red": 3, "blue": 1}, Total: 4})

	if got := p.Percent("red"); got != 75 {
		t.Errorf("Percent(red) = %f, want 75", got)
	}
	if got := p.Percent("blue"); got != 25 {
		t.Errorf("Percent(blue) = %f, want 25", got)
	}
	if got := p.Percent("missing"); got != 0 {
		t.Errorf("Percent(missing) = %f, want 0", got)
	}
}

func TestViewer_SeedAndConsume(t *testing.T) {
	authoritative := models.TallySnapshot{Counts: map[string]int{"red": 1, "blue": 0}, Total: 1}
	snapshot := func(ctx context.Context, pollID string) (models.TallySnapshot, error) {
		return authoritative, nil
	}

	hub := feed.NewHub()
	v := NewViewer("p1", NewMemMarkerStore(), snapshot)

	if err := v.Seed(context.Background()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if v.Projection.Total() != 1 {
		t.Fatalf("seeded total = %d, want 1", v.Projection.Total())
	}

	sub := hub.Subscribe("p1", "viewer")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		v.Consume(ctx, sub, 0)
		close(done)
	}()

	hub.Publish("p1", "blue")
	hub.Publish("p1", "red")

	waitFor(t, func() bool { return v.Projection.Total() == 3 })
	if v.Projection.Count("red") != 2 || v.Projection.Count("blue") != 1 {
		t.Errorf("counts = %v, want red:2 blue:1", v.Projection.Counts())
	}

	cancel()
	<-done
}

func TestViewer_ReconcileRepairsMissedEvent(t *testing.T) {
	// The authoritative store advances while the viewer is disconnected
	authoritative := models.TallySnapshot{Counts: map[string]int{"red": 1, "blue": 1}, Total: 2}
	snapshot := func(ctx context.Context, pollID string) (models.TallySnapshot, error) {
		return authoritative, nil
	}

	v := NewViewer("p1", NewMemMarkerStore(), snapshot)
	if err := v.Seed(context.Background()); err != nil {
		t.Fatal(err)
	}

	// A vote lands during the disconnect; its feed event is lost
	authoritative = models.TallySnapshot{Counts: map[string]int{"red": 2, "blue": 1}, Total: 3}

	if v.Projection.Total() == authoritative.Total {
		t.Fatal("test setup: projection should have drifted")
	}

	if err := v.Reconcile(context.Background()); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if !reflect.DeepEqual(v.Projection.Counts(), authoritative.Counts) {
		t.Errorf("counts = %v, want %v", v.Projection.Counts(), authoritative.Counts)
	}
	if v.Projection.Total() != 3 {
		t.Errorf("total = %d, want 3", v.Projection.Total())
	}
}

func TestFileMarkerStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markers.json")

	s, err := OpenFileMarkerStore(path)
	if err != nil {
		t.Fatalf("OpenFileMarkerStore() error = %v", err)
	}
	if s.HasVoted("p1") {
		t.Error("fresh store reports a vote")
	}

	if err := s.MarkVoted("p1"); err != nil {
		t.Fatalf("MarkVoted() error = %v", err)
	}
	if !s.HasVoted("p1") {
		t.Error("marker not set")
	}
	// Marking twice is fine; markers are never cleared
	if err := s.MarkVoted("p1"); err != nil {
		t.Fatalf("second MarkVoted() error = %v", err)
	}

	// Survives a reopen
	reopened, err := OpenFileMarkerStore(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	if !reopened.HasVoted("p1") {
		t.Error("marker lost across reopen")
	}
	if reopened.HasVoted("p2") {
		t.Error("unexpected marker for p2")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

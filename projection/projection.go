// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package projection

import (
	"sync"

	"github.com/livetally/livetally/models"
)

// Projection is a viewer's in-memory incremental view of one poll's
// tallies. It is a cache: seeded from an authoritative snapshot and
// advanced by feed events, never the other way around.
type Projection struct {
	mu     sync.RWMutex
	counts map[string]int
	total  int
}

func New() *Projection {
	return &Projection{counts: map[string]int{}}
}

// Seed replaces the projection state with an authoritative snapshot.
// Also used by reconciliation to repair drift after missed events.
func (p *Projection) Seed(snap models.TallySnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.counts = make(map[string]int, len(snap.Counts))
	for id, c := range snap.Counts {
		p.counts[id] = c
	}
	p.total = snap.Total
}

// Apply advances the projection by one accepted vote: +1 for the
// option, +1 for the total. Strictly additive; never re-fetches.
func (p *Projection) Apply(optionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.counts[optionID]++
	p.total++
}

// Count returns the current count for one option.
func (p *Projection) Count(optionID string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.counts[optionID]
}

// Counts returns a copy of the per-option counts.
func (p *Projection) Counts() map[string]int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]int, len(p.counts))
	for id, c := range p.counts {
		out[id] = c
	}
	return out
}

// Total returns the current vote total.
func (p *Projection) Total() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.total
}

// Percent renders an option's share of the total in [0, 100]. A pure
// function of projection state: with a zero total every option is 0.
func (p *Projection) Percent(optionID string) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.total == 0 {
		return 0
	}
	return float64(p.counts[optionID]) / float64(p.total) * 100
}

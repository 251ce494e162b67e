// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"log/slog"
	"sync"
)

// Event is one accepted vote, as seen by subscribers.
type Event struct {
	PollID   string `json:"poll_id"`
	OptionID string `json:"option_id"`
}

// subscriberBuffer bounds each subscriber's delivery queue. A consumer
// that falls further behind than this loses events and must reconcile
// from a tally snapshot.
const subscriberBuffer = 64

// Hub is the per-poll change feed. Delivery is best-effort: publishing
// never blocks on a slow subscriber, and a disconnected subscriber
// simply misses events.
type Hub struct {
	mu    sync.Mutex
	polls map[string]map[string]*Subscription
}

// Subscription is one subscriber's event stream for one poll. Events
// arrive on C in the order they were published for that poll.
type Subscription struct {
	PollID string
	C      <-chan Event

	hub   *Hub
	subID string
	ch    chan Event
	once  sync.Once
}

func NewHub() *Hub {
	return &Hub{polls: map[string]map[string]*Subscription{}}
}

// Subscribe registers subscriberID on a poll's feed. Idempotent: if the
// pair is already subscribed the existing subscription is returned and
// no second stream is created.
func (h *Hub) Subscribe(pollID, subscriberID string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.polls[pollID]
	if subs == nil {
		subs = map[string]*Subscription{}
		h.polls[pollID] = subs
	}
	if existing, ok := subs[subscriberID]; ok {
		return existing
	}

	ch := make(chan Event, subscriberBuffer)
	sub := &Subscription{
		PollID: pollID,
		C:      ch,
		hub:    h,
		subID:  subscriberID,
		ch:     ch,
	}
	subs[subscriberID] = sub
	return sub
}

// Publish fans one event out to every current subscriber of the poll.
// A full subscriber queue drops the event for that subscriber only.
func (h *Hub) Publish(pollID, optionID string) {
	ev := Event{PollID: pollID, OptionID: optionID}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.polls[pollID] {
		select {
		case sub.ch <- ev:
		default:
			slog.Warn("feed event dropped for slow subscriber",
				"poll_id", pollID, "subscriber", sub.subID)
		}
	}
}

// Unsubscribe tears down one (subscriber, poll) pair. Safe to call for
// pairs that were never subscribed or were already removed.
func (h *Hub) Unsubscribe(pollID, subscriberID string) {
	h.mu.Lock()
	sub, ok := h.polls[pollID][subscriberID]
	if ok {
		delete(h.polls[pollID], subscriberID)
		if len(h.polls[pollID]) == 0 {
			delete(h.polls, pollID)
		}
	}
	h.mu.Unlock()

	if ok {
		sub.once.Do(func() { close(sub.ch) })
	}
}

// Subscribers reports the current subscriber count for a poll.
func (h *Hub) Subscribers(pollID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.polls[pollID])
}

// Close removes the subscription from its hub and closes the event
// channel. Idempotent; no delivery happens afterwards.
func (s *Subscription) Close() {
	s.hub.Unsubscribe(s.PollID, s.subID)
}

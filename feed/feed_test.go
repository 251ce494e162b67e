// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"testing"
	"time"
)

func drain(sub *Subscription, max int) []Event {
	events := []Event{}
	for len(events) < max {
		select {
		case ev, ok := <-sub.C:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-time.After(200 * time.Millisecond):
			return events
		}
	}
	return events
}

func TestPublishFanOut(t *testing.T) {
	hub := NewHub()
	subA := hub.Subscribe("p1", "viewerA")
	subB := hub.Subscribe("p1", "viewerB")
	other := hub.Subscribe("p2", "viewerA")

	hub.Publish("p1", "opt1")
	hub.Publish("p1", "opt2")

	for name, sub := range map[string]*Subscription{"A": subA, "B": subB} {
		events := drain(sub, 2)
		if len(events) != 2 {
			t.Fatalf("subscriber %s: expected 2 events, got %d", name, len(events))
		}
		// Per-poll publish order is preserved
		if events[0].OptionID != "opt1" || events[1].OptionID != "opt2" {
			t.Errorf("subscriber %s: events out of order: %v", name, events)
		}
	}

	if got := drain(other, 1); len(got) != 0 {
		t.Errorf("poll p2 subscriber received p1 events: %v", got)
	}
}

func TestSubscribeIdempotent(t *testing.T) {
	hub := NewHub()

	first := hub.Subscribe("p1", "viewerA")
	second := hub.Subscribe("p1", "viewerA")

	if first != second {
		t.Error("re-subscribing the same (subscriber, poll) pair created a second stream")
	}
	if hub.Subscribers("p1") != 1 {
		t.Errorf("expected 1 subscriber, got %d", hub.Subscribers("p1"))
	}

	// Events must not be duplicated through the doubled subscribe
	hub.Publish("p1", "opt1")
	if events := drain(first, 2); len(events) != 1 {
		t.Errorf("expected exactly 1 event, got %d", len(events))
	}
}

func TestUnsubscribeIdempotent(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("p1", "viewerA")

	sub.Close()
	sub.Close()
	hub.Unsubscribe("p1", "viewerA")
	hub.Unsubscribe("p1", "never-subscribed")

	if hub.Subscribers("p1") != 0 {
		t.Errorf("expected 0 subscribers, got %d", hub.Subscribers("p1"))
	}

	// No delivery after teardown; the channel is closed
	hub.Publish("p1", "opt1")
	select {
	case ev, ok := <-sub.C:
		if ok {
			t.Errorf("received event after close: %v", ev)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("channel not closed after unsubscribe")
	}
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	hub := NewHub()
	slow := hub.Subscribe("p1", "slow")

	// Publish past the buffer without consuming; must never block
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer+10; i++ {
			hub.Publish("p1", "opt")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}

	if events := drain(slow, subscriberBuffer+10); len(events) != subscriberBuffer {
		t.Errorf("expected %d buffered events, got %d", subscriberBuffer, len(events))
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	hub := NewHub()
	// Must be a no-op, not a panic
	hub.Publish("nobody-home", "opt1")
}

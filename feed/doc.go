// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package feed is the per-poll change feed: one event per accepted vote,
fanned out to every live viewer of that poll.

	hub := feed.NewHub()
	sub := hub.Subscribe(pollID, viewerID)
	for ev := range sub.C {
		// apply increment
	}
	sub.Close()

Subscribing an already-subscribed (subscriber, poll) pair is a no-op
that returns the existing subscription. Unsubscribe and Close are
idempotent.

Delivery is best-effort by design. Each subscriber has a bounded queue;
publishing never blocks, and a full queue drops the event for that
subscriber only. The feed is a cache-invalidation hint, not a source of
truth - consumers repair any gap by re-pulling a tally snapshot (see
package projection).
*/
package feed

// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package projection keeps a viewer's local tally view current.

A Projection is seeded once from an authoritative snapshot, then
advanced by exactly one increment per change-feed event. Because the
feed is best-effort, the projection is strictly a cache: Reconcile
re-pulls the snapshot to repair drift, and a Viewer does so on a
periodic interval and after every resubscribe.

	v := projection.NewViewer(pollID, markers, snapshotFn)
	v.Seed(ctx)
	sub := hub.Subscribe(pollID, viewerID)
	go v.Consume(ctx, sub, 30*time.Second)

Rendering is a pure function of state: Percent returns 0 for every
option while the total is 0.

The MarkerStore holds the client's per-poll "already voted" markers as
an injected, persisted key-value store (FileMarkerStore for real
clients, MemMarkerStore for tests). A marker, once set, is never
cleared.
*/
package projection

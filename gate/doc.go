// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package gate is the vote admission pipeline.

# Checks

Submit runs ordered, short-circuiting checks, cheapest first:

 1. shape validation (no storage access)
 2. cookie marker fast-path (no storage access)
 3. poll existence and option-belongs-to-poll
 4. ledger probe for a vote already carrying either identity hash
 5. atomic insert; the schema's unique constraints settle races

Steps 4 and 5 together implement duplicate rejection: the probe handles
the common case cheaply, the constraint makes the decision atomic. Two
concurrent submissions sharing a fingerprint or address hash commit at
most one vote between them.

# Rejections

Every failure is one tagged Rejection value:

	vote, rej := g.Submit(ctx, req)
	if rej != nil {
		switch rej.Kind {
		case gate.KindAlreadyVoted: // 403
		case gate.KindPollNotFound: // 404
		// ...
		}
	}

The three duplicate layers (cookie, ledger, constraint) all surface as
KindAlreadyVoted; which layer fired is kept on Rejection.Layer for
logging only. Rejections are terminal for the attempt - the gate never
retries internally.

# Acceptance

On success the vote is committed, published on the change feed, and
returned; the HTTP layer issues the caller a one-year per-poll voted
marker.
*/
package gate

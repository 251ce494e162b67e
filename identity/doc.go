// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity derives the low-trust voter identity signals.

Two signals exist per submission: a salted one-way hash of the
originating network address, and a fingerprint hash computed entirely
client-side (user agent, timezone, display geometry). Neither is a
security boundary; together with the per-poll cookie marker they form
the three duplicate-vote layers.

# Address Hashing

	hash := identity.HashAddress(ip, cfg.AddressSalt)

HMAC-SHA256 truncated to 64 bits of hex. Raw addresses are never
persisted.

# Signal Extraction

	addrHash, fpHash, err := identity.Extract(ip, req.Fingerprint, salt)

Pure and deterministic, which is what makes repeated attempts by the
same client collide in the uniqueness checks. The fingerprint is only
shape-validated (hex, bounded length), never recomputed.

# Vote Markers

	name := identity.VotedCookieName(pollID) // "voted_<pollID>"

The marker cookie is issued with a one-year lifetime after an accepted
vote and is never cleared by the server.
*/
package identity

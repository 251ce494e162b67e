// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyFingerprint   = errors.New("fingerprint is empty")
	ErrInvalidFingerprint = errors.New("invalid fingerprint format")
)

// MaxFingerprintLen bounds the client-supplied fingerprint hash. A
// SHA-256 hex digest is 64 characters; anything past 128 is garbage.
const MaxFingerprintLen = 128

// HashAddress creates a one-way hash of a network address for privacy.
// Includes salt to prevent rainbow table attacks. Deterministic: the
// same address always yields the same hash, which the duplicate checks
// rely on across repeated attempts.
func HashAddress(addr, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(addr))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}

// ValidateFingerprint checks the shape of a client-computed fingerprint
// hash. The value itself is low-trust (user agent, timezone and display
// geometry hashed client-side); the server never recomputes it, only
// rejects values that cannot be a hash.
func ValidateFingerprint(fp string) error {
	if fp == "" {
		return ErrEmptyFingerprint
	}
	if len(fp) > MaxFingerprintLen {
		return ErrInvalidFingerprint
	}
	for i := 0; i < len(fp); i++ {
		c := fp[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return ErrInvalidFingerprint
		}
	}
	return nil
}

// Extract derives the two low-trust identity signals for a submission.
// Pure function: no side effects, same inputs always yield same outputs.
func Extract(remoteAddr, clientFingerprint, salt string) (addressHash, fingerprintHash string, err error) {
	if err := ValidateFingerprint(clientFingerprint); err != nil {
		return "", "", err
	}
	return HashAddress(remoteAddr, salt), clientFingerprint, nil
}

// VotedCookieName returns the per-poll "already voted" marker name.
// Once issued the marker is never cleared by this subsystem.
func VotedCookieName(pollID string) string {
	return "voted_" + pollID
}

// NewVoteID generates a fresh vote identifier.
func NewVoteID() string {
	return uuid.NewString()
}

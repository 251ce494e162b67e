// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package projection

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// MarkerStore records which polls this client has voted on. Markers are
// write-once: no operation clears one. Injected into Viewer rather than
// read from any ambient global.
type MarkerStore interface {
	HasVoted(pollID string) bool
	MarkVoted(pollID string) error
}

// FileMarkerStore persists markers as a JSON object keyed by poll ID.
type FileMarkerStore struct {
	mu    sync.Mutex
	path  string
	voted map[string]bool
}

// OpenFileMarkerStore loads (or starts) the marker file at path.
func OpenFileMarkerStore(path string) (*FileMarkerStore, error) {
	s := &FileMarkerStore{path: path, voted: map[string]bool{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read marker file: %w", err)
	}
	if err := json.Unmarshal(data, &s.voted); err != nil {
		return nil, fmt.Errorf("failed to parse marker file: %w", err)
	}
	return s, nil
}

func (s *FileMarkerStore) HasVoted(pollID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voted[pollID]
}

func (s *FileMarkerStore) MarkVoted(pollID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.voted[pollID] {
		return nil
	}
	s.voted[pollID] = true

	data, err := json.Marshal(s.voted)
	if err != nil {
		return fmt.Errorf("failed to encode markers: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to persist markers: %w", err)
	}
	return nil
}

// MemMarkerStore is an in-memory MarkerStore for tests and short-lived
// viewers.
type MemMarkerStore struct {
	mu    sync.Mutex
	voted map[string]bool
}

func NewMemMarkerStore() *MemMarkerStore {
	return &MemMarkerStore{voted: map[string]bool{}}
}

func (s *MemMarkerStore) HasVoted(pollID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voted[pollID]
}

func (s *MemMarkerStore) MarkVoted(pollID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voted[pollID] = true
	return nil
}

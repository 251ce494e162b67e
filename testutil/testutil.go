// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/livetally/livetally/cliparse"
	"github.com/livetally/livetally/db"
)

var dbSeq atomic.Int64

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. Each call gets its own database; cache=shared keeps it alive
// across the pool, and a single connection serializes writers the way
// the production postgres deployment serializes on its constraints.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:livetally_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3419,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		AddressSalt:  "test-address-salt",
	}
}

// CreatePoll inserts a poll directly, the way the external authoring
// collaborator would, and returns its ID.
func CreatePoll(t *testing.T, conn *sql.DB, question string) string {
	t.Helper()

	pollID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO poll (id, question, author_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, pollID, question, "author-"+uuid.NewString()[:8], time.Now())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// AddOption adds an option to a poll and returns the option ID
func AddOption(t *testing.T, conn *sql.DB, pollID, text string) string {
	t.Helper()

	optionID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO option (id, poll_id, text)
		VALUES ($1, $2, $3)
	`, optionID, pollID, text)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// InsertVote appends a vote row directly, bypassing the gate.
func InsertVote(t *testing.T, conn *sql.DB, pollID, optionID, addressHash, fingerprintHash string) string {
	t.Helper()

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO vote (id, poll_id, option_id, address_hash, fingerprint_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, voteID, pollID, optionID, addressHash, fingerprintHash, time.Now())
	if err != nil {
		t.Fatalf("Failed to insert test vote: %v", err)
	}

	return voteID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

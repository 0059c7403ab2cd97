// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-tally/auth"
	"github.com/danielhkuo/quickly-tally/cliparse"
	"github.com/danielhkuo/quickly-tally/db"
	"github.com/danielhkuo/quickly-tally/models"
)

// SetupTestDB creates a fresh sqlite database with the full schema. The
// database file lives in the test's temp dir.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   "file:test.db",
		DatabaseType:  "sqlite",
		AdminKeySalt:  "test-admin-salt",
		MaxCandidates: 9,
		MaxVoters:     100,

		BallotRatePerMinute: 0,
	}
}

// CreateTestElection creates an election with the given candidates and
// returns its ID and admin key. status should be "open" or "closed".
func CreateTestElection(t *testing.T, conn *sql.DB, cfg cliparse.Config, status string, candidates ...string) (electionID, adminKey string) {
	t.Helper()

	electionID, _ = auth.GenerateID(16)
	adminKey = auth.GenerateAdminKey(electionID, cfg.AdminKeySalt)

	err := db.InsertElection(conn, models.Election{
		ID:        electionID,
		Title:     "Test Election",
		Method:    models.MethodIRV,
		Status:    status,
		MaxVoters: cfg.MaxVoters,
		CreatedAt: time.Now(),
	}, candidates)
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return electionID, adminKey
}

// CastTestBallot stores a ballot of candidate positions, most preferred first
func CastTestBallot(t *testing.T, conn *sql.DB, electionID string, ranks ...int) string {
	t.Helper()

	ballotID, _ := auth.GenerateID(16)
	if err := db.InsertBallot(conn, ballotID, electionID, ranks, nil, time.Now()); err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}

	return ballotID
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

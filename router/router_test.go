// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	t.Run("root", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Body.String() != "quickly-tally API v1" {
			t.Errorf("Unexpected body '%s'", w.Body.String())
		}
	})

	t.Run("unknown path", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/nowhere", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	// 400, 401, 403 and 404 all come from handlers; only 405 means no route
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"POST", "/elections"},
		{"GET", "/elections/test-id"},
		{"POST", "/elections/test-id/close"},
		{"POST", "/elections/test-id/ballots"},
		{"GET", "/elections/test-id/ballot-count"},
		{"GET", "/elections/test-id/results"},
		{"POST", "/cards/validate"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"DELETE", "/elections/test-id"},
		{"GET", "/elections/test-id/close"},
		{"PUT", "/elections/test-id/ballots"},
		{"GET", "/cards/validate"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	electionID, adminKey := testutil.CreateTestElection(t, db, cfg, models.StatusOpen, "Alice", "Bob")
	mux := NewRouter(db, cfg)

	t.Run("election ID reaches handler", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/elections/"+electionID, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
		}
	})

	t.Run("admin key reaches close", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/elections/"+electionID+"/close", nil)
		req.Header.Set("X-Admin-Key", adminKey)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 with valid admin key, got %d. Body: %s", w.Code, w.Body.String())
		}
	})
}

func TestWriteRateLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cfg.BallotRatePerMinute = 1
	cfg.BallotBurst = 2
	mux := NewRouter(db, cfg)

	// Unknown election, so the allowed requests fall through to 404
	want := []int{http.StatusNotFound, http.StatusNotFound, http.StatusTooManyRequests}
	for i, status := range want {
		req := httptest.NewRequest("POST", "/elections/missing/ballots", strings.NewReader(`{"ranks":["Alice"]}`))
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != status {
			t.Errorf("Request %d: expected status %d, got %d", i+1, status, w.Code)
		}
	}

	t.Run("reads are not limited", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/elections/missing/ballot-count", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code == http.StatusTooManyRequests {
			t.Error("Expected reads to bypass the write limit")
		}
	})
}

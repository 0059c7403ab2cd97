// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-tally/cache"
	"github.com/danielhkuo/quickly-tally/cliparse"
	"github.com/danielhkuo/quickly-tally/db"
	"github.com/danielhkuo/quickly-tally/middleware"
	"github.com/danielhkuo/quickly-tally/models"
)

// sealedResults is what a closed election's results page serves. It never
// changes once the snapshot is written.
type sealedResults struct {
	candidates []models.Candidate
	snapshot   models.ResultSnapshot
}

type ResultsHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	results *cache.Cache[sealedResults]
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{
		db:      db,
		cfg:     cfg,
		results: cache.New[sealedResults](10 * time.Minute),
	}
}

// GetResults handles GET /elections/:id/results
// Returns 403 if election is open (results are sealed)
// Returns final snapshot if election is closed
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	election, err := db.GetElection(h.db, electionID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// CRITICAL: Results are sealed while election is open
	if election.Status != models.StatusClosed {
		middleware.ErrorResponse(w, http.StatusForbidden, "Results are hidden until election is closed")
		return
	}

	if election.FinalSnapshotID == nil {
		slog.Error("closed election has no snapshot", "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Results not available")
		return
	}

	sealed, hit, err := h.results.GetOrFetch(*election.FinalSnapshotID, func() (sealedResults, error) {
		return h.loadSealed(electionID, *election.FinalSnapshotID)
	})
	if err != nil {
		slog.Error("failed to load results", "election_id", electionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load results")
		return
	}
	slog.Debug("results served", "election_id", electionID, "cached", hit)

	middleware.JSONResponse(w, http.StatusOK, models.ElectionResults{
		Election:   election,
		Candidates: sealed.candidates,
		Snapshot:   sealed.snapshot,
	})
}

func (h *ResultsHandler) loadSealed(electionID, snapshotID string) (sealedResults, error) {
	snapshot, err := db.GetSnapshot(h.db, snapshotID)
	if err != nil {
		return sealedResults{}, err
	}

	candidates, err := db.GetCandidates(h.db, electionID)
	if err != nil {
		return sealedResults{}, err
	}

	return sealedResults{candidates: candidates, snapshot: snapshot}, nil
}

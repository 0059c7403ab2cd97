// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-tally/auth"
	"github.com/danielhkuo/quickly-tally/cliparse"
	"github.com/danielhkuo/quickly-tally/db"
	"github.com/danielhkuo/quickly-tally/middleware"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/runoff"
)

type BallotHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewBallotHandler(db *sql.DB, cfg cliparse.Config) *BallotHandler {
	return &BallotHandler{db: db, cfg: cfg}
}

// CastBallot handles POST /elections/:id/ballots
func (h *BallotHandler) CastBallot(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	// Parse request
	var req models.CastBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Ranks) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ranks cannot be empty")
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

	// Can only vote in open elections
	if election.Status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not open for voting")
		return
	}

	candidates, err := db.GetCandidates(h.db, electionID)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Validate the ballot against the candidate list
	e, err := runoff.NewElection(runoff.Config{MaxCandidates: len(candidates), MaxVoters: 1}, db.CandidateNames(candidates))
	if err != nil {
		slog.Error("stored candidates are invalid", "election_id", electionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if err := e.Cast(req.Ranks); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	ranks := e.Ballots()[0]

	// Get IP hash for tracking
	clientIP := middleware.GetClientIP(r)
	ipHash := auth.HashIP(clientIP, h.cfg.AdminKeySalt) // Reuse admin salt for IP hashing

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Status and capacity are checked again under the row lock; a close
	// may have committed since the read above
	err = db.LockOpenElection(tx, electionID)
	if errors.Is(err, db.ErrNotOpen) {
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not open for voting")
		return
	}
	if err != nil {
		slog.Error("failed to lock election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	count, err := db.CountBallots(tx, electionID)
	if err != nil {
		slog.Error("failed to count ballots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count >= election.MaxVoters {
		middleware.ErrorResponse(w, http.StatusConflict, "Election has reached its maximum number of voters")
		return
	}

	ballotID := uuid.NewString()
	if err := db.InsertBallot(tx, ballotID, electionID, ranks, &ipHash, time.Now()); err != nil {
		slog.Error("failed to insert ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit ballot")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit ballot")
		return
	}

	slog.Info("ballot cast", "election_id", electionID, "ballot_id", ballotID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastBallotResponse{
		BallotID: ballotID,
		Message:  "Ballot submitted successfully",
	})
}

// GetBallotCount handles GET /elections/:id/ballot-count
func (h *BallotHandler) GetBallotCount(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	if _, err := db.GetElection(h.db, electionID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
			return
		}
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	count, err := db.CountBallots(h.db, electionID)
	if err != nil {
		slog.Error("failed to count ballots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotCountResponse{
		ElectionID:  electionID,
		BallotCount: count,
	})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-tally/cliparse"
	"github.com/danielhkuo/quickly-tally/handlers"
	"github.com/danielhkuo/quickly-tally/middleware"
	"github.com/danielhkuo/quickly-tally/ratelimit"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(db, cfg)
	ballotHandler := handlers.NewBallotHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	cardHandler := handlers.NewCardHandler()

	// Writes share one per-IP allowance
	writes := ratelimit.New(cfg.BallotRatePerMinute, cfg.BallotBurst, 10*time.Minute)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election lifecycle
	mux.HandleFunc("POST /elections", middleware.WithLogging(middleware.RateLimit(writes, electionHandler.CreateElection)))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.GetElection))
	mux.HandleFunc("POST /elections/{id}/close", middleware.WithLogging(electionHandler.CloseElection))

	// Voting (public)
	mux.HandleFunc("POST /elections/{id}/ballots", middleware.WithLogging(middleware.RateLimit(writes, ballotHandler.CastBallot)))
	mux.HandleFunc("GET /elections/{id}/ballot-count", middleware.WithLogging(ballotHandler.GetBallotCount))

	// Results (sealed until closed)
	mux.HandleFunc("GET /elections/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Card checksum
	mux.HandleFunc("POST /cards/validate", middleware.WithLogging(cardHandler.Validate))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-tally API v1"))
	})

	return mux
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Tally API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - ElectionHandler: Election lifecycle (create, inspect, close)
  - BallotHandler: Ranked ballot submission and counting
  - ResultsHandler: Sealed results retrieval
  - CardHandler: Card number checksum and issuer lookup

Handlers are created via constructor functions that accept *sql.DB and Config:

	electionHandler := handlers.NewElectionHandler(db, cfg)

# Election Lifecycle

Elections are created open and move to closed exactly once:

	POST /elections              → CreateElection (returns admin_key)
	GET  /elections/{id}         → GetElection (candidates, no results)
	POST /elections/{id}/close   → CloseElection (runs the runoff)

Closing requires the X-Admin-Key header.

# Voting Flow

	POST /elections/{id}/ballots      → CastBallot
	GET  /elections/{id}/ballot-count → GetBallotCount

A ballot lists every candidate name exactly once, most preferred first.
Ballots are checked with runoff.Election.Cast before they are stored, so
the tally at close never sees an incomplete ballot.

# Tally

ComputeRunoff in tally.go loads candidates and ballots inside the closing
transaction, runs the instant-runoff rounds and converts the outcome into a
models.ResultSnapshot:

	snapshot, err := ComputeRunoff(tx, electionID, snapshotID, limits, closedAt)

Results stay hidden (403) until the snapshot exists. Once sealed, a snapshot
and its candidates are cached in memory by snapshot ID.
*/
package handlers

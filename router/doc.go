// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Tally API.

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Elections:

	POST /elections              - Create election (returns admin key)
	GET  /elections/{id}         - Election and candidates
	POST /elections/{id}/close   - Run the tally and seal results (X-Admin-Key)

Voting:

	POST /elections/{id}/ballots      - Cast a ranked ballot
	GET  /elections/{id}/ballot-count - Ballots cast so far

Results:

	GET /elections/{id}/results - Final snapshot (closed only)

Cards:

	POST /cards/validate - Checksum and issuer for a card number
*/
package router

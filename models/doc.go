// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateElectionRequest: title, candidates, max_voters
  - CastBallotRequest: ranks ([]string, most preferred first)
  - ValidateCardRequest: number

# Response Types

Types for JSON responses:

  - CreateElectionResponse: election_id, admin_key
  - CastBallotResponse: ballot_id, message
  - BallotCountResponse: election_id, ballot_count
  - CloseElectionResponse: closed_at, snapshot
  - ElectionResults: election, candidates, snapshot
  - ValidateCardResponse: number, issuer, checksum, valid
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Election: election metadata and lifecycle state
  - Candidate: candidate name and input position
  - RoundResult: votes per candidate for one runoff round
  - ResultSnapshot: immutable result record

NewResultSnapshot converts a runoff.Outcome into a ResultSnapshot, naming
each candidate in its round votes.

# Constants

Status values:

	StatusOpen   = "open"
	StatusClosed = "closed"

Tally method:

	MethodIRV = "irv"
*/
package models

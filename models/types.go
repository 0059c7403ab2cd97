// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/quickly-tally/runoff"
)

// Election status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Tally method constants
const (
	MethodIRV = "irv"
)

// Request types

type CreateElectionRequest struct {
	Title      string   `json:"title"`
	Candidates []string `json:"candidates"`
	MaxVoters  int      `json:"max_voters,omitempty"`
}

// candidate names, most preferred first
type CastBallotRequest struct {
	Ranks []string `json:"ranks"`
}

type ValidateCardRequest struct {
	Number string `json:"number"`
}

// Response types

type CreateElectionResponse struct {
	ElectionID string `json:"election_id"`
	AdminKey   string `json:"admin_key"`
}

type CastBallotResponse struct {
	BallotID string `json:"ballot_id"`
	Message  string `json:"message"`
}

type BallotCountResponse struct {
	ElectionID  string `json:"election_id"`
	BallotCount int    `json:"ballot_count"`
}

type CloseElectionResponse struct {
	ClosedAt time.Time      `json:"closed_at"`
	Snapshot ResultSnapshot `json:"snapshot"`
}

type ElectionResults struct {
	Election   Election       `json:"election"`
	Candidates []Candidate    `json:"candidates"`
	Snapshot   ResultSnapshot `json:"snapshot"`
}

type ValidateCardResponse struct {
	Number   string `json:"number"`
	Issuer   string `json:"issuer"`
	Checksum int    `json:"checksum"`
	Valid    bool   `json:"valid"`
}

// Domain types

type Election struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Method          string     `json:"method"`
	Status          string     `json:"status"`
	MaxVoters       int        `json:"max_voters"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
	FinalSnapshotID *string    `json:"final_snapshot_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type Candidate struct {
	Position int    `json:"position"` // 0-indexed input order
	Name     string `json:"name"`
}

type ElectionWithCandidates struct {
	Election   Election    `json:"election"`
	Candidates []Candidate `json:"candidates"`
}

// Runoff result types

type CandidateVotes struct {
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}

type RoundResult struct {
	Number     int              `json:"number"`
	State      string           `json:"state"`
	Votes      []CandidateVotes `json:"votes"`
	Eliminated []string         `json:"eliminated,omitempty"`
	Winners    []string         `json:"winners,omitempty"`
}

type ResultSnapshot struct {
	ID          string        `json:"id"`
	ElectionID  string        `json:"election_id"`
	Method      string        `json:"method"`
	ComputedAt  time.Time     `json:"computed_at"`
	State       string        `json:"state"`
	Winners     []string      `json:"winners"`
	Rounds      []RoundResult `json:"rounds"`
	BallotCount int           `json:"ballot_count"`
}

// NewResultSnapshot converts a runoff outcome over names into a snapshot
func NewResultSnapshot(id, electionID string, names []string, out runoff.Outcome, ballotCount int, computedAt time.Time) ResultSnapshot {
	rounds := make([]RoundResult, len(out.Rounds))
	for i, round := range out.Rounds {
		votes := make([]CandidateVotes, len(names))
		for j, name := range names {
			votes[j] = CandidateVotes{Name: name, Votes: round.Votes[j]}
		}
		rounds[i] = RoundResult{
			Number:     round.Number,
			State:      round.State.String(),
			Votes:      votes,
			Eliminated: round.Eliminated,
			Winners:    round.Winners,
		}
	}

	return ResultSnapshot{
		ID:          id,
		ElectionID:  electionID,
		Method:      MethodIRV,
		ComputedAt:  computedAt,
		State:       out.State.String(),
		Winners:     out.Winners,
		Rounds:      rounds,
		BallotCount: ballotCount,
	}
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

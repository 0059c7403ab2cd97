// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-tally/db"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/runoff"
)

// ComputeRunoff runs the instant-runoff tally over an election's stored
// ballots and returns the result as a snapshot
func ComputeRunoff(q db.Querier, electionID, snapshotID string, limits runoff.Config, computedAt time.Time) (models.ResultSnapshot, error) {
	candidates, err := db.GetCandidates(q, electionID)
	if err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to get candidates: %w", err)
	}
	names := db.CandidateNames(candidates)

	ballots, err := db.GetBallots(q, electionID)
	if err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to get ballots: %w", err)
	}

	e, err := runoff.NewElection(limits, names)
	if err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to create election: %w", err)
	}
	for _, ballot := range ballots {
		if err := e.Cast(rankNames(names, ballot)); err != nil {
			return models.ResultSnapshot{}, fmt.Errorf("stored ballot is invalid: %w", err)
		}
	}

	out := e.Run()
	return models.NewResultSnapshot(snapshotID, electionID, names, out, len(ballots), computedAt), nil
}

// rankNames maps candidate positions back to names. Positions outside the
// candidate list become empty names, which Cast rejects.
func rankNames(names []string, positions []int) []string {
	ranks := make([]string, len(positions))
	for i, pos := range positions {
		if pos >= 0 && pos < len(names) {
			ranks[i] = names[pos]
		}
	}
	return ranks
}

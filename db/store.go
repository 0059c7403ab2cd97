// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-tally/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrNotOpen  = errors.New("election is not open")
)

// Querier is satisfied by both *sql.DB and *sql.Tx
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// snapshotPayload is the JSON stored in result_snapshot.payload
type snapshotPayload struct {
	State       string               `json:"state"`
	Winners     []string             `json:"winners"`
	Rounds      []models.RoundResult `json:"rounds"`
	BallotCount int                  `json:"ballot_count"`
}

// InsertElection stores an election and its candidates in input order
func InsertElection(q Querier, e models.Election, names []string) error {
	_, err := q.Exec(`
		INSERT INTO election (id, title, method, status, max_voters, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.Title, e.Method, e.Status, e.MaxVoters, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert election: %w", err)
	}

	for i, name := range names {
		_, err := q.Exec(`
			INSERT INTO candidate (election_id, position, name)
			VALUES ($1, $2, $3)
		`, e.ID, i, name)
		if err != nil {
			return fmt.Errorf("failed to insert candidate %q: %w", name, err)
		}
	}

	return nil
}

// GetElection loads election metadata
func GetElection(q Querier, id string) (models.Election, error) {
	var e models.Election
	err := q.QueryRow(`
		SELECT id, title, method, status, max_voters, closed_at, final_snapshot_id, created_at
		FROM election
		WHERE id = $1
	`, id).Scan(
		&e.ID, &e.Title, &e.Method, &e.Status, &e.MaxVoters,
		&e.ClosedAt, &e.FinalSnapshotID, &e.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Election{}, ErrNotFound
	}
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to query election: %w", err)
	}

	return e, nil
}

// GetCandidates loads the candidates of an election in input order
func GetCandidates(q Querier, electionID string) ([]models.Candidate, error) {
	rows, err := q.Query(`
		SELECT position, name FROM candidate WHERE election_id = $1 ORDER BY position
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.Position, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}

// CandidateNames returns just the names from candidates, in order
func CandidateNames(candidates []models.Candidate) []string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	return names
}

// CountBallots returns how many ballots an election has received
func CountBallots(q Querier, electionID string) (int, error) {
	var count int
	err := q.QueryRow(`
		SELECT COUNT(*) FROM ballot WHERE election_id = $1
	`, electionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count ballots: %w", err)
	}
	return count, nil
}

// LockOpenElection takes the election row for the rest of the transaction
// and returns ErrNotOpen unless the election is open. Ballot writes and
// CloseElection both go through the row, so they serialize on it.
func LockOpenElection(q Querier, electionID string) error {
	res, err := q.Exec(`
		UPDATE election SET status = status
		WHERE id = $1 AND status = $2
	`, electionID, models.StatusOpen)
	if err != nil {
		return fmt.Errorf("failed to lock election: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to lock election: %w", err)
	}
	if n == 0 {
		return ErrNotOpen
	}
	return nil
}

// InsertBallot stores a ballot as candidate positions, most preferred first
func InsertBallot(q Querier, ballotID, electionID string, ranks []int, ipHash *string, submittedAt time.Time) error {
	_, err := q.Exec(`
		INSERT INTO ballot (id, election_id, submitted_at, ip_hash)
		VALUES ($1, $2, $3, $4)
	`, ballotID, electionID, submittedAt, ipHash)
	if err != nil {
		return fmt.Errorf("failed to insert ballot: %w", err)
	}

	for ordinal, position := range ranks {
		_, err := q.Exec(`
			INSERT INTO preference (ballot_id, ordinal, position)
			VALUES ($1, $2, $3)
		`, ballotID, ordinal, position)
		if err != nil {
			return fmt.Errorf("failed to insert preference: %w", err)
		}
	}

	return nil
}

// GetBallots loads every ballot of an election as candidate positions,
// in submission order
func GetBallots(q Querier, electionID string) ([][]int, error) {
	rows, err := q.Query(`
		SELECT p.ballot_id, p.position
		FROM preference p
		JOIN ballot b ON p.ballot_id = b.id
		WHERE b.election_id = $1
		ORDER BY b.submitted_at, b.id, p.ordinal
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ballots: %w", err)
	}
	defer rows.Close()

	var ballots [][]int
	var current string
	for rows.Next() {
		var ballotID string
		var position int
		if err := rows.Scan(&ballotID, &position); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		if ballotID != current || len(ballots) == 0 {
			ballots = append(ballots, nil)
			current = ballotID
		}
		last := len(ballots) - 1
		ballots[last] = append(ballots[last], position)
	}

	return ballots, rows.Err()
}

// InsertSnapshot stores a result snapshot
func InsertSnapshot(q Querier, s models.ResultSnapshot) error {
	payload, err := json.Marshal(snapshotPayload{
		State:       s.State,
		Winners:     s.Winners,
		Rounds:      s.Rounds,
		BallotCount: s.BallotCount,
	})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = q.Exec(`
		INSERT INTO result_snapshot (id, election_id, method, computed_at, payload)
		VALUES ($1, $2, $3, $4, $5)
	`, s.ID, s.ElectionID, s.Method, s.ComputedAt, string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// GetSnapshot loads a result snapshot
func GetSnapshot(q Querier, id string) (models.ResultSnapshot, error) {
	var s models.ResultSnapshot
	var payloadJSON []byte
	err := q.QueryRow(`
		SELECT id, election_id, method, computed_at, payload
		FROM result_snapshot
		WHERE id = $1
	`, id).Scan(&s.ID, &s.ElectionID, &s.Method, &s.ComputedAt, &payloadJSON)
	if err == sql.ErrNoRows {
		return models.ResultSnapshot{}, ErrNotFound
	}
	if err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to query snapshot: %w", err)
	}

	var payload snapshotPayload
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to parse snapshot payload: %w", err)
	}
	s.State = payload.State
	s.Winners = payload.Winners
	s.Rounds = payload.Rounds
	s.BallotCount = payload.BallotCount

	return s, nil
}

// CloseElection marks an open election closed with its final snapshot.
// Returns ErrNotOpen when the election was already closed.
func CloseElection(q Querier, electionID, snapshotID string, closedAt time.Time) error {
	res, err := q.Exec(`
		UPDATE election
		SET status = $1, closed_at = $2, final_snapshot_id = $3
		WHERE id = $4 AND status = $5
	`, models.StatusClosed, closedAt, snapshotID, electionID, models.StatusOpen)
	if err != nil {
		return fmt.Errorf("failed to close election: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to close election: %w", err)
	}
	if n == 0 {
		return ErrNotOpen
	}
	return nil
}

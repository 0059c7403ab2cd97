// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command runoff runs an instant-runoff election on the terminal.
//
//	runoff [-v] [-d url -t type] candidate ...
//
// It asks for the number of voters, then for each voter's full ranking, and
// prints the winner (or every tied winner, one per line).
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/quickly-tally/cliparse"
	"github.com/danielhkuo/quickly-tally/db"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/prompt"
	"github.com/danielhkuo/quickly-tally/report"
	"github.com/danielhkuo/quickly-tally/runoff"
)

// Exit codes
const (
	exitOK = iota
	exitUsage
	exitCandidates
	exitVoters
	exitInvalidVote
	exitStore
)

func main() {
	if _, statErr := os.Stat(".env"); statErr == nil {
		_ = godotenv.Load(".env")
	}
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := cliparse.ParseRunoffFlags(args)
	if err != nil {
		if !errors.Is(err, cliparse.ErrUsage) {
			fmt.Fprintln(stderr, err)
		}
		fmt.Fprintln(stderr, cliparse.ErrUsage)
		return exitUsage
	}
	if cfg.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	e, err := runoff.NewElection(cfg.Limits(), cfg.Candidates)
	switch {
	case errors.Is(err, runoff.ErrTooManyCandidates):
		fmt.Fprintf(stderr, "Maximum number of candidates is %d\n", cfg.MaxCandidates)
		return exitCandidates
	case err != nil:
		fmt.Fprintln(stderr, err)
		return exitCandidates
	}

	p := prompt.New(stdin, stdout)

	voters, err := p.Int("Number of voters: ")
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitVoters
	}
	if err := e.Config().CheckVoterCount(voters); err != nil {
		if errors.Is(err, runoff.ErrTooManyVoters) {
			fmt.Fprintf(stderr, "Maximum number of voters is %d\n", e.Config().MaxVoters)
		} else {
			fmt.Fprintln(stderr, err)
		}
		return exitVoters
	}

	for i := 0; i < voters; i++ {
		ranks := make([]string, len(cfg.Candidates))
		for j := range ranks {
			name, err := p.String("Rank %d: ", j+1)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return exitInvalidVote
			}
			if _, ok := e.Index(name); !ok {
				fmt.Fprintln(stdout, "Invalid vote.")
				return exitInvalidVote
			}
			ranks[j] = name
		}
		if err := e.Cast(ranks); err != nil {
			slog.Debug("ballot rejected", "voter", i+1, "error", err)
			fmt.Fprintln(stdout, "Invalid vote.")
			return exitInvalidVote
		}
		fmt.Fprintln(stdout)
	}

	out := e.Run()
	slog.Debug("runoff finished", "state", out.State, "rounds", len(out.Rounds))
	for _, name := range out.Winners {
		fmt.Fprintln(stdout, name)
	}

	if cfg.Verbose {
		if err := report.Render(stderr, cfg.Candidates, out); err != nil {
			slog.Warn("failed to render report", "error", err)
		}
	}

	if cfg.DatabaseURL != "" {
		electionID, err := record(cfg, e, out)
		if err != nil {
			slog.Error("failed to record election", "error", err)
			return exitStore
		}
		slog.Debug("election recorded", "election_id", electionID)
	}

	return exitOK
}

// record stores the election, its ballots and the final snapshot as one
// closed election
func record(cfg cliparse.RunoffConfig, e *runoff.Election, out runoff.Outcome) (string, error) {
	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if err := db.CreateSchema(conn); err != nil {
		return "", err
	}

	tx, err := conn.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	electionID := uuid.NewString()
	now := time.Now()

	err = db.InsertElection(tx, models.Election{
		ID:        electionID,
		Title:     "runoff: " + strings.Join(cfg.Candidates, ", "),
		Method:    models.MethodIRV,
		Status:    models.StatusOpen,
		MaxVoters: e.Config().MaxVoters,
		CreatedAt: now,
	}, cfg.Candidates)
	if err != nil {
		return "", err
	}

	// Offset submission times so ballots read back in entry order
	for i, ballot := range e.Ballots() {
		at := now.Add(time.Duration(i) * time.Millisecond)
		if err := db.InsertBallot(tx, uuid.NewString(), electionID, ballot, nil, at); err != nil {
			return "", err
		}
	}

	snapshot := models.NewResultSnapshot(uuid.NewString(), electionID, cfg.Candidates, out, e.VoterCount(), now)
	if err := db.CloseElection(tx, electionID, snapshot.ID, now); err != nil {
		return "", err
	}
	if err := db.InsertSnapshot(tx, snapshot); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return electionID, nil
}

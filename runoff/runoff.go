// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package runoff

import (
	"errors"
	"fmt"
)

const (
	DefaultMaxCandidates = 9
	DefaultMaxVoters     = 100
)

var (
	ErrNoCandidates       = errors.New("at least one candidate is required")
	ErrTooManyCandidates  = errors.New("too many candidates")
	ErrDuplicateCandidate = errors.New("duplicate candidate")
	ErrTooManyVoters      = errors.New("too many voters")
	ErrInvalidVoterCount  = errors.New("invalid voter count")
	ErrUnknownCandidate   = errors.New("unknown candidate")
	ErrIncompleteBallot   = errors.New("ballot must rank every candidate")
	ErrDuplicateRank      = errors.New("candidate ranked more than once")
)

// Config carries the capacity limits of an election
type Config struct {
	MaxCandidates int
	MaxVoters     int
}

func DefaultConfig() Config {
	return Config{
		MaxCandidates: DefaultMaxCandidates,
		MaxVoters:     DefaultMaxVoters,
	}
}

// withDefaults fills unset limits
func (c Config) withDefaults() Config {
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = DefaultMaxCandidates
	}
	if c.MaxVoters <= 0 {
		c.MaxVoters = DefaultMaxVoters
	}
	return c
}

// CheckVoterCount validates an announced number of voters
func (c Config) CheckVoterCount(n int) error {
	c = c.withDefaults()
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidVoterCount, n)
	}
	if n > c.MaxVoters {
		return fmt.Errorf("%w: %d exceeds maximum of %d", ErrTooManyVoters, n, c.MaxVoters)
	}
	return nil
}

type Candidate struct {
	Name       string
	Votes      int
	Eliminated bool
}

// State is the position of an election in the round protocol
type State int

const (
	StateActive State = iota
	StateRound
	StateDecided
	StateTied
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateRound:
		return "round"
	case StateDecided:
		return "decided"
	case StateTied:
		return "tied"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further rounds follow s
func (s State) Terminal() bool {
	return s == StateDecided || s == StateTied
}

// Round records one tabulation pass and what followed it
type Round struct {
	Number     int
	State      State
	Votes      []int    // per candidate, input order
	Winners    []string // set when State is terminal
	Eliminated []string // set when State is StateRound
}

type Outcome struct {
	State   State
	Winners []string
	Rounds  []Round
}

type Election struct {
	cfg        Config
	candidates []Candidate
	index      map[string]int
	ballots    [][]int
	rounds     int
	state      State
}

// NewElection creates an election over names, kept in the given order
func NewElection(cfg Config, names []string) (*Election, error) {
	cfg = cfg.withDefaults()

	if len(names) == 0 {
		return nil, ErrNoCandidates
	}
	if len(names) > cfg.MaxCandidates {
		return nil, fmt.Errorf("%w: %d exceeds maximum of %d", ErrTooManyCandidates, len(names), cfg.MaxCandidates)
	}

	e := &Election{
		cfg:        cfg,
		candidates: make([]Candidate, len(names)),
		index:      make(map[string]int, len(names)),
		state:      StateActive,
	}
	for i, name := range names {
		if _, exists := e.index[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCandidate, name)
		}
		e.index[name] = i
		e.candidates[i] = Candidate{Name: name}
	}

	return e, nil
}

func (e *Election) Config() Config {
	return e.cfg
}

func (e *Election) State() State {
	return e.state
}

// Index returns the input position of the named candidate
func (e *Election) Index(name string) (int, bool) {
	i, ok := e.index[name]
	return i, ok
}

// Candidates returns a copy of the candidates with their current counts
func (e *Election) Candidates() []Candidate {
	out := make([]Candidate, len(e.candidates))
	copy(out, e.candidates)
	return out
}

// Ballots returns a copy of the recorded ballots as candidate positions,
// most preferred first
func (e *Election) Ballots() [][]int {
	out := make([][]int, len(e.ballots))
	for i, ranks := range e.ballots {
		out[i] = append([]int(nil), ranks...)
	}
	return out
}

func (e *Election) VoterCount() int {
	return len(e.ballots)
}

// Cast records one ballot ranking every candidate from most to least preferred
func (e *Election) Cast(names []string) error {
	if len(e.ballots) >= e.cfg.MaxVoters {
		return fmt.Errorf("%w: maximum is %d", ErrTooManyVoters, e.cfg.MaxVoters)
	}
	if len(names) != len(e.candidates) {
		return fmt.Errorf("%w: got %d ranks, want %d", ErrIncompleteBallot, len(names), len(e.candidates))
	}

	ranks := make([]int, len(names))
	seen := make([]bool, len(e.candidates))
	for rank, name := range names {
		idx, ok := e.index[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCandidate, name)
		}
		if seen[idx] {
			return fmt.Errorf("%w: %q", ErrDuplicateRank, name)
		}
		seen[idx] = true
		ranks[rank] = idx
	}

	e.ballots = append(e.ballots, ranks)
	return nil
}

// Tabulate credits each ballot to its highest-ranked remaining candidate.
// Counts are recomputed from zero, so repeated calls agree.
func (e *Election) Tabulate() {
	e.ResetVotes()
	for _, ranks := range e.ballots {
		for _, idx := range ranks {
			if !e.candidates[idx].Eliminated {
				e.candidates[idx].Votes++
				break
			}
		}
	}
}

// Winner returns the first candidate holding a strict majority of ballots
func (e *Election) Winner() (int, bool) {
	half := len(e.ballots) / 2
	for i, c := range e.candidates {
		if c.Votes > half {
			return i, true
		}
	}
	return -1, false
}

// MinVotes returns the lowest count among remaining candidates
func (e *Election) MinVotes() int {
	lowest := -1
	for _, c := range e.candidates {
		if c.Eliminated {
			continue
		}
		if lowest < 0 || c.Votes < lowest {
			lowest = c.Votes
		}
	}
	if lowest < 0 {
		return 0
	}
	return lowest
}

// IsTie reports whether every remaining candidate holds exactly lowest votes
func (e *Election) IsTie(lowest int) bool {
	for _, c := range e.candidates {
		if !c.Eliminated && c.Votes != lowest {
			return false
		}
	}
	return true
}

// Eliminate flags every remaining candidate holding lowest votes and returns
// their names
func (e *Election) Eliminate(lowest int) []string {
	var names []string
	for i := range e.candidates {
		c := &e.candidates[i]
		if !c.Eliminated && c.Votes == lowest {
			c.Eliminated = true
			names = append(names, c.Name)
		}
	}
	return names
}

func (e *Election) ResetVotes() {
	for i := range e.candidates {
		e.candidates[i].Votes = 0
	}
}

func (e *Election) remaining() []string {
	var names []string
	for _, c := range e.candidates {
		if !c.Eliminated {
			names = append(names, c.Name)
		}
	}
	return names
}

// Step runs one round. Once the election is decided or tied, further calls
// repeat the final round without changing any state.
func (e *Election) Step() Round {
	e.Tabulate()

	if !e.state.Terminal() {
		e.rounds++
	}
	round := Round{
		Number: e.rounds,
		Votes:  make([]int, len(e.candidates)),
	}
	for i, c := range e.candidates {
		round.Votes[i] = c.Votes
	}

	if i, ok := e.Winner(); ok {
		e.state = StateDecided
		round.State = StateDecided
		round.Winners = []string{e.candidates[i].Name}
		return round
	}

	lowest := e.MinVotes()
	if e.IsTie(lowest) {
		e.state = StateTied
		round.State = StateTied
		round.Winners = e.remaining()
		return round
	}

	e.state = StateRound
	round.State = StateRound
	round.Eliminated = e.Eliminate(lowest)
	e.ResetVotes()
	return round
}

// Run holds rounds until the election is decided or tied
func (e *Election) Run() Outcome {
	var out Outcome
	for {
		round := e.Step()
		out.Rounds = append(out.Rounds, round)
		if round.State.Terminal() {
			out.State = round.State
			out.Winners = round.Winners
			return out
		}
	}
}

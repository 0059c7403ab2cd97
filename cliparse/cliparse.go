// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/danielhkuo/quickly-tally/runoff"
)

// ErrUsage reports a command line the runoff tool cannot run with
var ErrUsage = errors.New("usage: runoff [flags] candidate ...")

type Config struct {
	Port          int    `env:"PORT" envDefault:"3318"`
	DatabaseURL   string `env:"DATABASE_URL"`
	DatabaseType  string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	AdminKeySalt  string `env:"ADMIN_KEY_SALT"`
	MaxCandidates int    `env:"MAX_CANDIDATES" envDefault:"9"`
	MaxVoters     int    `env:"MAX_VOTERS" envDefault:"100"`

	// Per-IP write limits; a rate of 0 disables limiting
	BallotRatePerMinute int `env:"BALLOT_RATE_PER_MINUTE" envDefault:"60"`
	BallotBurst         int `env:"BALLOT_BURST" envDefault:"10"`
}

type RunoffConfig struct {
	Candidates    []string
	DatabaseURL   string `env:"DATABASE_URL"`
	DatabaseType  string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	MaxCandidates int    `env:"MAX_CANDIDATES" envDefault:"9"`
	MaxVoters     int    `env:"MAX_VOTERS" envDefault:"100"`
	Verbose       bool   `env:"RUNOFF_VERBOSE"`
}

// Limits returns the election capacity limits
func (c Config) Limits() runoff.Config {
	return runoff.Config{MaxCandidates: c.MaxCandidates, MaxVoters: c.MaxVoters}
}

func (c RunoffConfig) Limits() runoff.Config {
	return runoff.Config{MaxCandidates: c.MaxCandidates, MaxVoters: c.MaxVoters}
}

// parseEnv loads configuration defaults from environment variables
func parseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseFlags reads the election server configuration. Flags override
// environment variables.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	if err := parseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("quickly-tally", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")

	// Election limits
	fs.IntVar(&cfg.MaxCandidates, "max-candidates", cfg.MaxCandidates, "Maximum candidates per election")
	fs.IntVar(&cfg.MaxVoters, "max-voters", cfg.MaxVoters, "Maximum ballots per election")
	fs.IntVar(&cfg.BallotRatePerMinute, "ballot-rpm", cfg.BallotRatePerMinute, "Write requests per minute per client IP (0 disables)")
	fs.IntVar(&cfg.BallotBurst, "ballot-burst", cfg.BallotBurst, "Write burst per client IP")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", cfg.AdminKeySalt, "Admin key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if err := checkDatabaseType(cfg.DatabaseType); err != nil {
		return Config{}, err
	}
	if err := checkLimits(cfg.MaxCandidates, cfg.MaxVoters); err != nil {
		return Config{}, err
	}
	if cfg.BallotRatePerMinute < 0 || cfg.BallotBurst < 0 {
		return Config{}, errors.New("ballot rate and burst must not be negative")
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	return cfg, nil
}

// ParseRunoffFlags reads the runoff tool configuration. Positional
// arguments are the candidate names.
func ParseRunoffFlags(args []string) (RunoffConfig, error) {
	var cfg RunoffConfig
	if err := parseEnv(&cfg); err != nil {
		return RunoffConfig{}, err
	}

	fs := flag.NewFlagSet("runoff", flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintln(out, ErrUsage)
		fs.PrintDefaults()
		fmt.Fprintln(out, "\nThe voter count must be between 0 and the voter limit. A negative")
		fmt.Fprintln(out, "count is rejected with exit status 3 rather than read as zero voters.")
	}
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Print round-by-round results to stderr")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL to record the election in")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")
	fs.IntVar(&cfg.MaxCandidates, "max-candidates", cfg.MaxCandidates, "Maximum candidates")
	fs.IntVar(&cfg.MaxVoters, "max-voters", cfg.MaxVoters, "Maximum voters")

	if err := fs.Parse(args); err != nil {
		return RunoffConfig{}, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	cfg.Candidates = fs.Args()
	if len(cfg.Candidates) == 0 {
		return RunoffConfig{}, ErrUsage
	}
	if cfg.DatabaseURL != "" {
		if err := checkDatabaseType(cfg.DatabaseType); err != nil {
			return RunoffConfig{}, fmt.Errorf("%w: %v", ErrUsage, err)
		}
	}
	if err := checkLimits(cfg.MaxCandidates, cfg.MaxVoters); err != nil {
		return RunoffConfig{}, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	return cfg, nil
}

func checkDatabaseType(dbType string) error {
	switch dbType {
	case "sqlite", "postgres":
		return nil
	default:
		return fmt.Errorf("unsupported database type %q (use sqlite or postgres)", dbType)
	}
}

func checkLimits(maxCandidates, maxVoters int) error {
	if maxCandidates < 1 {
		return errors.New("max candidates must be at least 1")
	}
	if maxVoters < 1 {
		return errors.New("max voters must be at least 1")
	}
	return nil
}

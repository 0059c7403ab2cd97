// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

Environment variables are read first with github.com/caarlos0/env, then
flags parsed from the given arguments override them.

# Server

	cfg, err := cliparse.ParseFlags(os.Args[1:])

	PORT           → -p               (default 3318)
	DATABASE_URL   → -d               (required)
	DATABASE_TYPE  → -t               (sqlite or postgres, default sqlite)
	ADMIN_KEY_SALT → -admin-salt      (required)
	MAX_CANDIDATES → -max-candidates  (default 9)
	MAX_VOTERS     → -max-voters      (default 100)

	BALLOT_RATE_PER_MINUTE → -ballot-rpm    (default 60, 0 disables)
	BALLOT_BURST           → -ballot-burst  (default 10)

The write limit is per client IP and covers election creation and ballot
submission.

# Runoff Tool

	cfg, err := cliparse.ParseRunoffFlags(os.Args[1:])

Positional arguments are the candidate names. Flags:

	RUNOFF_VERBOSE → -v   round-by-round report on stderr
	DATABASE_URL   → -d   record the election in a database
	DATABASE_TYPE  → -t

MAX_CANDIDATES and MAX_VOTERS apply as for the server. Flag and argument
errors wrap ErrUsage, so the tool can print usage and exit 1:

	if errors.Is(err, cliparse.ErrUsage) {
		fmt.Fprintln(os.Stderr, cliparse.ErrUsage)
		os.Exit(1)
	}

A candidate count above the limit is not a usage error; runoff.NewElection
reports it.
*/
package cliparse

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Tally API server.

Quickly Tally runs ranked-choice elections with instant-runoff counting.
Ballots are collected over HTTP, results stay sealed until an admin closes
the election, and the final round-by-round tally is stored as a snapshot.
The same module ships two command-line tools:

  - cmd/runoff: interactive instant-runoff election on a terminal
  - cmd/credit: card number checksum and issuer lookup

# Starting the Server

	ADMIN_KEY_SALT=... DATABASE_URL=file:tally.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-salt ...

A .env file in the working directory is loaded first when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - ADMIN_KEY_SALT (-admin-salt): secret for admin keys and IP hashes

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - MAX_CANDIDATES (-max-candidates): per election (default: 9)
  - MAX_VOTERS (-max-voters): per election (default: 100)
  - BALLOT_RATE_PER_MINUTE (-ballot-rpm): writes per client IP (default: 60)
  - BALLOT_BURST (-ballot-burst): write burst per client IP (default: 10)

# Architecture

  - card: Luhn checksum and issuer classification
  - runoff: instant-runoff tally engine
  - handlers: HTTP request handlers (elections, ballots, results, cards)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, rate limiting, JSON helpers
  - ratelimit: per-IP token buckets
  - cache: TTL cache for sealed results
  - models: request/response and stored types
  - auth: admin keys, IDs and IP hashing
  - db: schema and queries for sqlite and postgres
  - cliparse: configuration parsing
  - prompt, report: terminal input and round tables for cmd/runoff

See package documentation for each component.
*/
package main

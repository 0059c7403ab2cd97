// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database, creates the schema, and reads and writes
elections.

# Connecting

Open accepts "sqlite" (modernc.org/sqlite, the default) or "postgres"
(github.com/lib/pq):

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections get foreign keys and a busy timeout unless the URL
already sets _pragma options.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - election: election metadata and lifecycle state
  - candidate: candidate names by input position
  - ballot: one row per ballot cast
  - preference: one row per rank of a ballot
  - result_snapshot: immutable runoff results (JSON payload)

# Relationships

	election 1──* candidate
	election 1──* ballot
	ballot 1──* preference
	election 1──* result_snapshot

All foreign keys use ON DELETE CASCADE.

# Queries

Helpers take a Querier, so they run the same inside or outside a
transaction:

	tx, _ := conn.Begin()
	defer tx.Rollback()
	if err := db.CloseElection(tx, id, snapshotID, time.Now()); err != nil {
		...
	}
	err = db.InsertSnapshot(tx, snapshot)

Lookups return ErrNotFound for missing rows. CloseElection returns ErrNotOpen
when the election was already closed.
*/
package db

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db persists the ballot registry in PostgreSQL or SQLite.

# Connecting

Open selects the driver from the configured database type:

	conn, err := db.Open(db.TypePostgres, "postgres://...")
	conn, err := db.Open(db.TypeSQLite, "file:tally.db")

PostgreSQL uses github.com/lib/pq; SQLite uses the pure-Go
modernc.org/sqlite driver and is limited to one open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - ballot: title, start time and duration, keyed by creation index
  - ballot_option: option labels in ballot order
  - vote: one row per (ballot, voter)

Tallies are not stored. The registry recomputes them from the vote table
when it is opened.

# Store

Store implements registry.Store:

	reg, err := registry.Open(registry.SystemClock{}, db.NewStore(conn))
*/
package db

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Kept to types and syntax that PostgreSQL and SQLite both accept.
// Timestamps are unix seconds plus a nanosecond remainder so any year fits;
// durations are integer nanoseconds.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS ballot (
    ballot_index INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    start_unix BIGINT NOT NULL,
    start_nanos INTEGER NOT NULL,
    duration_ns BIGINT NOT NULL CHECK (duration_ns > 0)
)`,

	`CREATE TABLE IF NOT EXISTS ballot_option (
    ballot_index INTEGER NOT NULL REFERENCES ballot(ballot_index) ON DELETE CASCADE,
    option_index INTEGER NOT NULL,
    label TEXT NOT NULL,
    PRIMARY KEY (ballot_index, option_index)
)`,

	`CREATE TABLE IF NOT EXISTS vote (
    ballot_index INTEGER NOT NULL,
    voter_id TEXT NOT NULL,
    option_index INTEGER NOT NULL,
    cast_at_unix BIGINT NOT NULL,
    cast_at_nanos INTEGER NOT NULL,
    PRIMARY KEY (ballot_index, voter_id),
    FOREIGN KEY (ballot_index, option_index) REFERENCES ballot_option(ballot_index, option_index)
)`,

	`CREATE INDEX IF NOT EXISTS idx_vote_ballot_option ON vote(ballot_index, option_index)`,
}

// DropSchema removes every table. Used by tests to start from scratch.
func DropSchema(db *sql.DB) error {
	for _, table := range []string{"vote", "ballot_option", "ballot"} {
		if _, err := db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	return nil
}

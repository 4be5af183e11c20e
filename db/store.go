// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-tally/registry"
)

// Store persists registry ballots and votes in a SQL database.
type Store struct {
	db *sql.DB
}

var _ registry.Store = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// InsertBallot writes the ballot row and its options in one transaction.
func (s *Store) InsertBallot(index int, b registry.Ballot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO ballot (ballot_index, title, start_unix, start_nanos, duration_ns)
		VALUES ($1, $2, $3, $4, $5)
	`, index, b.Title, b.StartTime.Unix(), b.StartTime.Nanosecond(), int64(b.Duration))
	if err != nil {
		return fmt.Errorf("failed to insert ballot: %w", err)
	}

	for i, label := range b.Options {
		_, err = tx.Exec(`
			INSERT INTO ballot_option (ballot_index, option_index, label)
			VALUES ($1, $2, $3)
		`, index, i, label)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ballot: %w", err)
	}
	return nil
}

// InsertVote records a vote. The (ballot, voter) primary key rejects a
// second vote even if the caller skipped its own check.
func (s *Store) InsertVote(v registry.VoteRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO vote (ballot_index, voter_id, option_index, cast_at_unix, cast_at_nanos)
		VALUES ($1, $2, $3, $4, $5)
	`, v.BallotIndex, string(v.Voter), v.OptionIndex, v.CastAt.Unix(), v.CastAt.Nanosecond())
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

// LoadBallots returns every ballot ordered by index, with options in order.
func (s *Store) LoadBallots() ([]registry.Ballot, error) {
	ballots, err := s.loadBallotRows()
	if err != nil {
		return nil, err
	}
	if err := s.loadOptions(ballots); err != nil {
		return nil, err
	}
	return ballots, nil
}

// Each query runs in its own function so its rows are closed before the
// next one starts; SQLite uses a single connection.
func (s *Store) loadBallotRows() ([]registry.Ballot, error) {
	rows, err := s.db.Query(`
		SELECT ballot_index, title, start_unix, start_nanos, duration_ns
		FROM ballot
		ORDER BY ballot_index
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ballots: %w", err)
	}
	defer rows.Close()

	var ballots []registry.Ballot
	for rows.Next() {
		var index int
		var b registry.Ballot
		var startUnix, startNanos, durationNS int64
		if err := rows.Scan(&index, &b.Title, &startUnix, &startNanos, &durationNS); err != nil {
			return nil, fmt.Errorf("failed to scan ballot: %w", err)
		}
		if index != len(ballots) {
			return nil, fmt.Errorf("ballot index gap: expected %d, found %d", len(ballots), index)
		}
		b.StartTime = time.Unix(startUnix, startNanos)
		b.Duration = time.Duration(durationNS)
		ballots = append(ballots, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ballots: %w", err)
	}
	return ballots, nil
}

func (s *Store) loadOptions(ballots []registry.Ballot) error {
	rows, err := s.db.Query(`
		SELECT ballot_index, option_index, label
		FROM ballot_option
		ORDER BY ballot_index, option_index
	`)
	if err != nil {
		return fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ballotIndex, optionIndex int
		var label string
		if err := rows.Scan(&ballotIndex, &optionIndex, &label); err != nil {
			return fmt.Errorf("failed to scan option: %w", err)
		}
		if ballotIndex < 0 || ballotIndex >= len(ballots) {
			return fmt.Errorf("option references missing ballot %d", ballotIndex)
		}
		b := &ballots[ballotIndex]
		if optionIndex != len(b.Options) {
			return fmt.Errorf("ballot %d option index gap: expected %d, found %d", ballotIndex, len(b.Options), optionIndex)
		}
		b.Options = append(b.Options, label)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read options: %w", err)
	}
	return nil
}

// LoadVotes returns every recorded vote in cast order.
func (s *Store) LoadVotes() ([]registry.VoteRecord, error) {
	rows, err := s.db.Query(`
		SELECT ballot_index, voter_id, option_index, cast_at_unix, cast_at_nanos
		FROM vote
		ORDER BY cast_at_unix, cast_at_nanos, ballot_index, voter_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var votes []registry.VoteRecord
	for rows.Next() {
		var v registry.VoteRecord
		var voter string
		var castUnix, castNanos int64
		if err := rows.Scan(&v.BallotIndex, &voter, &v.OptionIndex, &castUnix, &castNanos); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		v.Voter = registry.VoterID(voter)
		v.CastAt = time.Unix(castUnix, castNanos)
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}

	return votes, nil
}

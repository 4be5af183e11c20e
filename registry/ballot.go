// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import "time"

// MinDuration is the shortest window a ballot may stay open.
const MinDuration = time.Second

// VoterID identifies a caller. The registry only compares it for equality.
type VoterID string

// Status is derived from the clock on every read and never stored.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusClosed  Status = "closed"
)

// Ballot holds the immutable fields of a ballot.
type Ballot struct {
	Title     string
	Options   []string
	StartTime time.Time
	Duration  time.Duration
}

// EndTime is the first instant at which votes are no longer admitted.
func (b Ballot) EndTime() time.Time {
	return b.StartTime.Add(b.Duration)
}

// StatusAt reports where now falls relative to [StartTime, EndTime).
func (b Ballot) StatusAt(now time.Time) Status {
	switch {
	case now.Before(b.StartTime):
		return StatusPending
	case now.Before(b.EndTime()):
		return StatusActive
	default:
		return StatusClosed
	}
}

func (b Ballot) clone() Ballot {
	b.Options = append([]string(nil), b.Options...)
	return b
}

// VoteRecord is the permanent fact that Voter voted in ballot BallotIndex.
type VoteRecord struct {
	BallotIndex int
	Voter       VoterID
	OptionIndex int
	CastAt      time.Time
}

type voteKey struct {
	ballot int
	voter  VoterID
}

// entry is a stored ballot together with its running tallies.
type entry struct {
	ballot  Ballot
	tallies []int
}

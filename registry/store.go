// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

// Store persists registry mutations. The registry calls it while holding its
// write lock, before touching memory, so a failed write leaves both sides
// unchanged.
type Store interface {
	InsertBallot(index int, b Ballot) error
	InsertVote(v VoteRecord) error
	// LoadBallots returns every ballot ordered by index, starting at 0.
	LoadBallots() ([]Ballot, error)
	LoadVotes() ([]VoteRecord, error)
}

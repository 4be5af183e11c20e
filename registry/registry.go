// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"fmt"
	"sync"
	"time"
)

// Registry owns every ballot, its tallies and the set of cast votes.
// All methods are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	clock   Clock
	store   Store
	ballots []entry
	voted   map[voteKey]struct{}
}

// New returns an empty registry that keeps its state in memory only.
func New(clock Clock) *Registry {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Registry{
		clock: clock,
		voted: make(map[voteKey]struct{}),
	}
}

// Open returns a registry backed by store, rebuilt from what the store
// already holds. Tallies are recomputed by replaying stored votes.
func Open(clock Clock, store Store) (*Registry, error) {
	r := New(clock)

	ballots, err := store.LoadBallots()
	if err != nil {
		return nil, fmt.Errorf("failed to load ballots: %w", err)
	}
	for _, b := range ballots {
		r.ballots = append(r.ballots, entry{ballot: b.clone(), tallies: make([]int, len(b.Options))})
	}

	votes, err := store.LoadVotes()
	if err != nil {
		return nil, fmt.Errorf("failed to load votes: %w", err)
	}
	for _, v := range votes {
		if v.BallotIndex < 0 || v.BallotIndex >= len(r.ballots) {
			return nil, fmt.Errorf("stored vote references ballot %d: %w", v.BallotIndex, ErrNotFound)
		}
		e := &r.ballots[v.BallotIndex]
		if v.OptionIndex < 0 || v.OptionIndex >= len(e.tallies) {
			return nil, fmt.Errorf("stored vote references option %d of ballot %d: %w", v.OptionIndex, v.BallotIndex, ErrNotFound)
		}
		key := voteKey{ballot: v.BallotIndex, voter: v.Voter}
		if _, ok := r.voted[key]; ok {
			return nil, fmt.Errorf("stored votes for ballot %d: %w", v.BallotIndex, ErrAlreadyVoted)
		}
		r.voted[key] = struct{}{}
		e.tallies[v.OptionIndex]++
	}

	r.store = store
	return r, nil
}

// CreateBallot validates and appends a new ballot, returning its index.
func (r *Registry) CreateBallot(title string, options []string, startTime time.Time, duration time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(options) < 2 {
		return 0, invalidBallot(ReasonTooFewOptions)
	}
	if !startTime.After(r.clock.Now()) {
		return 0, invalidBallot(ReasonStartNotFuture)
	}
	if duration < MinDuration {
		return 0, invalidBallot(ReasonDurationTooLow)
	}

	b := Ballot{
		Title:     title,
		Options:   append([]string(nil), options...),
		StartTime: startTime,
		Duration:  duration,
	}
	index := len(r.ballots)

	if r.store != nil {
		if err := r.store.InsertBallot(index, b); err != nil {
			return 0, fmt.Errorf("failed to persist ballot: %w", err)
		}
	}

	r.ballots = append(r.ballots, entry{ballot: b, tallies: make([]int, len(options))})
	return index, nil
}

// GetBallotByIndex returns a copy of the ballot's immutable fields.
func (r *Registry) GetBallotByIndex(index int) (Ballot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, err := r.lookup(index)
	if err != nil {
		return Ballot{}, err
	}
	return e.ballot.clone(), nil
}

// CastVote records voter's choice of optionIndex in ballot index.
// Either the vote is recorded and counted, or nothing changes.
func (r *Registry) CastVote(index, optionIndex int, voter VoterID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.lookup(index)
	if err != nil {
		return err
	}

	now := r.clock.Now()
	switch e.ballot.StatusAt(now) {
	case StatusPending:
		return ErrBallotNotStarted
	case StatusClosed:
		return ErrBallotEnded
	}

	if optionIndex < 0 || optionIndex >= len(e.tallies) {
		return fmt.Errorf("option %d of ballot %d: %w", optionIndex, index, ErrNotFound)
	}

	key := voteKey{ballot: index, voter: voter}
	if _, ok := r.voted[key]; ok {
		return ErrAlreadyVoted
	}

	if r.store != nil {
		v := VoteRecord{BallotIndex: index, Voter: voter, OptionIndex: optionIndex, CastAt: now}
		if err := r.store.InsertVote(v); err != nil {
			return fmt.Errorf("failed to persist vote: %w", err)
		}
	}

	r.voted[key] = struct{}{}
	e.tallies[optionIndex]++
	return nil
}

// HasVoted reports whether voter has cast a vote in ballot index.
// Unknown ballots are an error rather than false.
func (r *Registry) HasVoted(voter VoterID, index int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, err := r.lookup(index); err != nil {
		return false, err
	}
	_, ok := r.voted[voteKey{ballot: index, voter: voter}]
	return ok, nil
}

// GetVotingCount returns the tally of a single option.
func (r *Registry) GetVotingCount(index, optionIndex int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, err := r.lookup(index)
	if err != nil {
		return 0, err
	}
	if optionIndex < 0 || optionIndex >= len(e.tallies) {
		return 0, fmt.Errorf("option %d of ballot %d: %w", optionIndex, index, ErrNotFound)
	}
	return e.tallies[optionIndex], nil
}

// GetResult returns a copy of the tallies in option order. Results of a
// ballot that is still active are a live snapshot.
func (r *Registry) GetResult(index int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, err := r.lookup(index)
	if err != nil {
		return nil, err
	}
	return append([]int(nil), e.tallies...), nil
}

// GetWinners marks every option whose tally equals the maximum. Ties yield
// several winners, and a ballot without votes marks every option.
func (r *Registry) GetWinners(index int) ([]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, err := r.lookup(index)
	if err != nil {
		return nil, err
	}
	return Winners(e.tallies), nil
}

// Status returns the lifecycle state of ballot index at the current time.
func (r *Registry) Status(index int) (Status, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, err := r.lookup(index)
	if err != nil {
		return "", err
	}
	return e.ballot.StatusAt(r.clock.Now()), nil
}

// Len returns the number of ballots created so far.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ballots)
}

// Now exposes the registry clock so collaborators render times consistently.
func (r *Registry) Now() time.Time {
	return r.clock.Now()
}

// Winners computes the winner set of a tally sequence.
func Winners(tallies []int) []bool {
	top := 0
	for _, t := range tallies {
		if t > top {
			top = t
		}
	}
	winners := make([]bool, len(tallies))
	for i, t := range tallies {
		winners[i] = t == top
	}
	return winners
}

// lookup must be called with r.mu held.
func (r *Registry) lookup(index int) (*entry, error) {
	if index < 0 || index >= len(r.ballots) {
		return nil, fmt.Errorf("ballot %d: %w", index, ErrNotFound)
	}
	return &r.ballots[index], nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import "errors"

var (
	ErrInvalidBallot    = errors.New("invalid ballot")
	ErrNotFound         = errors.New("not found")
	ErrBallotNotStarted = errors.New("ballot has not started yet")
	ErrBallotEnded      = errors.New("ballot has ended")
	ErrAlreadyVoted     = errors.New("already voted in this ballot")
)

// Creation-time validation reasons, reported in this order.
const (
	ReasonTooFewOptions  = "at least 2 options required"
	ReasonStartNotFuture = "start time must be in the future"
	ReasonDurationTooLow = "duration must be at least 1 time unit"
)

// InvalidBallotError reports which creation rule rejected a ballot.
// It matches ErrInvalidBallot with errors.Is.
type InvalidBallotError struct {
	Reason string
}

func (e *InvalidBallotError) Error() string {
	return "invalid ballot: " + e.Reason
}

func (e *InvalidBallotError) Is(target error) bool {
	return target == ErrInvalidBallot
}

func invalidBallot(reason string) error {
	return &InvalidBallotError{Reason: reason}
}

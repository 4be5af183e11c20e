// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registry implements the ballot registry: time-boxed multiple-choice
ballots, one vote per voter per ballot, and live tallies.

# Lifecycle

A ballot is never stored with a status. Its state is computed from the
registry clock on every call:

	pending  now < start
	active   start <= now < start+duration
	closed   now >= start+duration

Votes are admitted only while active. Every read works in every state.

# Creating and Voting

	reg := registry.New(registry.SystemClock{})
	index, err := reg.CreateBallot("Dinner?", []string{"Fish", "Beef"}, start, 5*time.Minute)
	err = reg.CastVote(index, 1, voterID)

CreateBallot checks, in order: at least two options, a start time strictly
in the future, and a duration of at least MinDuration.

CastVote checks, in order: the ballot exists, it has started, it has not
ended, the option exists, and the voter has not voted before.

# Errors

	ErrInvalidBallot     creation rejected (*InvalidBallotError has the reason)
	ErrNotFound          unknown ballot or option
	ErrBallotNotStarted  vote before the window
	ErrBallotEnded       vote at or after the end of the window
	ErrAlreadyVoted      second vote from the same voter

A rejected call never changes registry state.

# Persistence

Open attaches a Store and rebuilds the registry from it. Writes reach the
store before memory, under the registry lock.
*/
package registry

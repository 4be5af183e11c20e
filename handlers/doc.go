// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Tally API.

# Handler Types

Each handler is a struct with registry and config dependencies:

  - VoterHandler: voter token issuance
  - BallotHandler: ballot creation and lookup
  - VotingHandler: vote casting and has-voted checks
  - ResultsHandler: counts, tallies, winners and text reports

Handlers are created via constructor functions:

	ballotHandler := handlers.NewBallotHandler(reg)

# Ballot Lifecycle

A ballot is pending until its start time, active for its duration, then
closed. The state is computed from the clock and returned as "status".

	POST /ballots                   → CreateBallot (returns ballot_index)
	GET  /ballots                   → ListBallots
	GET  /ballots/{index}           → GetBallot

# Voting Flow

	POST /voters                    → Register (returns voter_token)
	POST /ballots/{index}/votes     → CastVote
	GET  /ballots/{index}/voters/me → HasVoted

Voter operations require the X-Voter-Token header.

# Results

Results are readable in every state, including while votes are still
coming in.

	GET /ballots/{index}/options/{option}/count → GetVotingCount
	GET /ballots/{index}/result                 → GetResult
	GET /ballots/{index}/winners                → GetWinners
	GET /ballots/{index}/report                 → GetReport (text/plain)

# Errors

	400  invalid JSON, invalid ballot, malformed index
	401  missing or malformed voter token
	404  unknown ballot or option
	409  ballot not started, ballot ended, already voted
	500  storage failure
*/
package handlers

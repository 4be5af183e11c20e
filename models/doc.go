// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

Times cross the wire as unix seconds and durations as whole seconds.

# Request Types

  - CreateBallotRequest: title, options, start_time, duration
  - CastVoteRequest: option_index

# Response Types

  - RegisterVoterResponse: voter_token
  - CreateBallotResponse: ballot_index
  - CastVoteResponse: ballot_index, option_index, message
  - HasVotedResponse: ballot_index, has_voted
  - VotingCountResponse: ballot_index, option_index, count
  - ResultResponse: ballot_index, status, tallies, total_votes
  - WinnersResponse: ballot_index, status, winners
  - ListBallotsResponse: ballots
  - ErrorResponse: error, message

# Domain Types

  - Ballot: a ballot's immutable fields plus its derived end time and status
*/
package models

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Tally API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(reg, cfg)

# Endpoints

Health:

	GET /health

Voter identity:

	POST /voters - Issue a voter token

Ballot management:

	POST /ballots         - Create ballot
	GET  /ballots         - List ballots
	GET  /ballots/{index} - Ballot details and status

Voting (requires X-Voter-Token):

	POST /ballots/{index}/votes     - Cast a vote
	GET  /ballots/{index}/voters/me - Has this voter voted?

Results (readable in every state):

	GET /ballots/{index}/options/{option}/count - Tally of one option
	GET /ballots/{index}/result                 - All tallies
	GET /ballots/{index}/winners                - Winner flags
	GET /ballots/{index}/report                 - Plain-text tally table

# Handler Initialization

The router creates handler instances with dependency injection:

	voterHandler := handlers.NewVoterHandler(cfg)
	ballotHandler := handlers.NewBallotHandler(reg)
	votingHandler := handlers.NewVotingHandler(reg, cfg)
	resultsHandler := handlers.NewResultsHandler(reg)

Handlers share one registry; it does its own locking.
*/
package router

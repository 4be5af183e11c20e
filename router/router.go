// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-tally/cliparse"
	"github.com/danielhkuo/quickly-tally/handlers"
	"github.com/danielhkuo/quickly-tally/middleware"
	"github.com/danielhkuo/quickly-tally/registry"
)

func NewRouter(reg *registry.Registry, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	voterHandler := handlers.NewVoterHandler(cfg)
	ballotHandler := handlers.NewBallotHandler(reg)
	votingHandler := handlers.NewVotingHandler(reg, cfg)
	resultsHandler := handlers.NewResultsHandler(reg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voter identity
	mux.HandleFunc("POST /voters", middleware.WithLogging(voterHandler.Register))

	// Ballot management
	mux.HandleFunc("POST /ballots", middleware.WithLogging(ballotHandler.CreateBallot))
	mux.HandleFunc("GET /ballots", middleware.WithLogging(ballotHandler.ListBallots))
	mux.HandleFunc("GET /ballots/{index}", middleware.WithLogging(ballotHandler.GetBallot))

	// Voting operations
	mux.HandleFunc("POST /ballots/{index}/votes", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /ballots/{index}/voters/me", middleware.WithLogging(votingHandler.HasVoted))

	// Results retrieval (live while the ballot is active)
	mux.HandleFunc("GET /ballots/{index}/options/{option}/count", middleware.WithLogging(resultsHandler.GetVotingCount))
	mux.HandleFunc("GET /ballots/{index}/result", middleware.WithLogging(resultsHandler.GetResult))
	mux.HandleFunc("GET /ballots/{index}/winners", middleware.WithLogging(resultsHandler.GetWinners))
	mux.HandleFunc("GET /ballots/{index}/report", middleware.WithLogging(resultsHandler.GetReport))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-tally API v1"))
	})

	return mux
}

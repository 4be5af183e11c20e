// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-tally/auth"
	"github.com/danielhkuo/quickly-tally/cliparse"
	"github.com/danielhkuo/quickly-tally/middleware"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/registry"
)

type VotingHandler struct {
	reg *registry.Registry
	cfg cliparse.Config
}

func NewVotingHandler(reg *registry.Registry, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{reg: reg, cfg: cfg}
}

// CastVote handles POST /ballots/{index}/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(r, "index")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot index must be a non-negative integer")
		return
	}

	// Get voter identity from header
	voter, err := auth.VoterFromRequest(r, h.cfg.VoterIDSalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	// Parse request
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.OptionIndex == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_index is required")
		return
	}

	if err := h.reg.CastVote(index, *req.OptionIndex, voter); err != nil {
		registryErrorResponse(w, err, "cast_vote")
		return
	}

	slog.Info("vote cast", "ballot_index", index, "voter_id", voter)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		BallotIndex: index,
		OptionIndex: *req.OptionIndex,
		Message:     "Vote recorded",
	})
}

// HasVoted handles GET /ballots/{index}/voters/me
func (h *VotingHandler) HasVoted(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(r, "index")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot index must be a non-negative integer")
		return
	}

	voter, err := auth.VoterFromRequest(r, h.cfg.VoterIDSalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	voted, err := h.reg.HasVoted(voter, index)
	if err != nil {
		registryErrorResponse(w, err, "has_voted")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.HasVotedResponse{
		BallotIndex: index,
		HasVoted:    voted,
	})
}

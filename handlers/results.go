// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-tally/middleware"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/registry"
	"github.com/danielhkuo/quickly-tally/report"
)

type ResultsHandler struct {
	reg *registry.Registry
}

func NewResultsHandler(reg *registry.Registry) *ResultsHandler {
	return &ResultsHandler{reg: reg}
}

// GetVotingCount handles GET /ballots/{index}/options/{option}/count
func (h *ResultsHandler) GetVotingCount(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(r, "index")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot index must be a non-negative integer")
		return
	}
	option, ok := pathIndex(r, "option")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option index must be a non-negative integer")
		return
	}

	count, err := h.reg.GetVotingCount(index, option)
	if err != nil {
		registryErrorResponse(w, err, "get_voting_count")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VotingCountResponse{
		BallotIndex: index,
		OptionIndex: option,
		Count:       count,
	})
}

// GetResult handles GET /ballots/{index}/result
// Tallies are visible while the ballot is still active.
func (h *ResultsHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(r, "index")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot index must be a non-negative integer")
		return
	}

	tallies, err := h.reg.GetResult(index)
	if err != nil {
		registryErrorResponse(w, err, "get_result")
		return
	}
	status, err := h.reg.Status(index)
	if err != nil {
		registryErrorResponse(w, err, "get_result")
		return
	}

	total := 0
	for _, n := range tallies {
		total += n
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultResponse{
		BallotIndex: index,
		Status:      string(status),
		Tallies:     tallies,
		TotalVotes:  total,
	})
}

// GetWinners handles GET /ballots/{index}/winners
func (h *ResultsHandler) GetWinners(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(r, "index")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot index must be a non-negative integer")
		return
	}

	winners, err := h.reg.GetWinners(index)
	if err != nil {
		registryErrorResponse(w, err, "get_winners")
		return
	}
	status, err := h.reg.Status(index)
	if err != nil {
		registryErrorResponse(w, err, "get_winners")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WinnersResponse{
		BallotIndex: index,
		Status:      string(status),
		Winners:     winners,
	})
}

// GetReport handles GET /ballots/{index}/report
// Returns a plain-text tally table.
func (h *ResultsHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(r, "index")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot index must be a non-negative integer")
		return
	}

	br, err := report.New(h.reg, index)
	if err != nil {
		registryErrorResponse(w, err, "get_report")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	br.PrintTallyTable(w)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-tally/middleware"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/registry"
)

type BallotHandler struct {
	reg *registry.Registry
}

func NewBallotHandler(reg *registry.Registry) *BallotHandler {
	return &BallotHandler{reg: reg}
}

const (
	maxDurationSeconds = math.MaxInt64 / int64(time.Second)
	// 9999-12-31T23:59:59Z
	maxStartTime = 253402300799
)

// CreateBallot handles POST /ballots
func (h *BallotHandler) CreateBallot(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Duration > maxDurationSeconds {
		middleware.ErrorResponse(w, http.StatusBadRequest, "duration is too long")
		return
	}
	if req.StartTime > maxStartTime {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start time is too far in the future")
		return
	}

	// Non-positive durations reach the registry as zero so it reports them
	// in its own validation order.
	var duration time.Duration
	if req.Duration > 0 {
		duration = time.Duration(req.Duration) * time.Second
	}

	index, err := h.reg.CreateBallot(req.Title, req.Options, time.Unix(req.StartTime, 0), duration)
	if err != nil {
		registryErrorResponse(w, err, "create_ballot")
		return
	}

	slog.Info("ballot created", "ballot_index", index, "options", len(req.Options), "start_time", req.StartTime)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateBallotResponse{
		BallotIndex: index,
	})
}

// GetBallot handles GET /ballots/{index}
func (h *BallotHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(r, "index")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot index must be a non-negative integer")
		return
	}

	b, err := h.reg.GetBallotByIndex(index)
	if err != nil {
		registryErrorResponse(w, err, "get_ballot")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, toModel(index, b, h.reg.Now()))
}

// ListBallots handles GET /ballots
func (h *BallotHandler) ListBallots(w http.ResponseWriter, r *http.Request) {
	now := h.reg.Now()
	n := h.reg.Len()

	ballots := make([]models.Ballot, 0, n)
	for i := 0; i < n; i++ {
		b, err := h.reg.GetBallotByIndex(i)
		if err != nil {
			registryErrorResponse(w, err, "list_ballots")
			return
		}
		ballots = append(ballots, toModel(i, b, now))
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListBallotsResponse{
		Ballots: ballots,
	})
}

func toModel(index int, b registry.Ballot, now time.Time) models.Ballot {
	return models.Ballot{
		Index:     index,
		Title:     b.Title,
		Options:   b.Options,
		StartTime: b.StartTime.Unix(),
		Duration:  int64(b.Duration / time.Second),
		EndTime:   b.EndTime().Unix(),
		Status:    string(b.StatusAt(now)),
	}
}

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
)

type VoterHandler struct {
	cfg cliparse.Config
}

func NewVoterHandler(cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{cfg: cfg}
}

// Register handles POST /voters
// Issues a fresh voter token. Nothing is stored; the token is its own proof.
func (h *VoterHandler) Register(w http.ResponseWriter, r *http.Request) {
	token := auth.GenerateVoterToken()

	slog.Info("voter token issued", "voter_id", auth.VoterIDFromToken(token, h.cfg.VoterIDSalt))

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVoterResponse{
		VoterToken: token,
	})
}

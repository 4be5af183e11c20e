// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-tally/middleware"
	"github.com/danielhkuo/quickly-tally/registry"
)

// registryErrorResponse maps a registry rejection to an HTTP status and
// writes its message. Anything unrecognized is a storage failure.
func registryErrorResponse(w http.ResponseWriter, err error, op string) {
	var invalid *registry.InvalidBallotError
	switch {
	case errors.As(err, &invalid):
		middleware.ErrorResponse(w, http.StatusBadRequest, invalid.Error())
	case errors.Is(err, registry.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, registry.ErrBallotNotStarted),
		errors.Is(err, registry.ErrBallotEnded),
		errors.Is(err, registry.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		slog.Error("registry operation failed", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
	}
}

// pathIndex parses a non-negative integer path value.
func pathIndex(r *http.Request, name string) (int, bool) {
	index, err := strconv.Atoi(r.PathValue(name))
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

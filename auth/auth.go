// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-tally/registry"
)

// VoterTokenHeader carries the caller's voter token.
const VoterTokenHeader = "X-Voter-Token"

var (
	ErrMissingToken = errors.New("voter token required")
	ErrInvalidToken = errors.New("invalid token format")
)

// GenerateVoterToken creates a random token identifying a voter.
func GenerateVoterToken() string {
	return uuid.NewString()
}

// ValidateVoterToken checks that token is a well-formed voter token.
func ValidateVoterToken(token string) error {
	if token == "" {
		return ErrMissingToken
	}
	if _, err := uuid.Parse(token); err != nil {
		return ErrInvalidToken
	}
	return nil
}

// VoterIDFromToken derives the stable identity the registry sees.
// The token itself is never stored; only its HMAC under salt is.
func VoterIDFromToken(token, salt string) registry.VoterID {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(strings.ToLower(token)))
	return registry.VoterID(hex.EncodeToString(h.Sum(nil)))
}

// VoterFromRequest reads and validates the voter token header and returns
// the caller's identity.
func VoterFromRequest(r *http.Request, salt string) (registry.VoterID, error) {
	token := strings.TrimSpace(r.Header.Get(VoterTokenHeader))
	if err := ValidateVoterToken(token); err != nil {
		return "", err
	}
	return VoterIDFromToken(token, salt), nil
}

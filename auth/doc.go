// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth turns voter tokens into the opaque identities the registry uses.

# Voter Tokens

Voter tokens are random UUIDs handed out by POST /voters:

	token := auth.GenerateVoterToken()

Clients send the token back in the X-Voter-Token header on every vote.

# Voter IDs

The registry never sees the token. It sees an HMAC-SHA256 of the token
keyed with the configured salt:

	voter := auth.VoterIDFromToken(token, salt)

The mapping is deterministic, so a token always yields the same voter, and
a database dump does not reveal tokens that could be replayed.

# Requests

VoterFromRequest combines header extraction, validation and derivation:

	voter, err := auth.VoterFromRequest(r, cfg.VoterIDSalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}
*/
package auth

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Tally API server.

Quickly Tally is a time-boxed ballot service. Anyone can open a ballot
with a fixed option list, a start time and a duration; each voter may
vote once while the ballot is active, and tallies and winners can be
read at any time.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	VOTER_ID_SALT=... go run .

Or with flags:

	go run . -p 3318 -t sqlite -d tally.db -voter-salt ...

Settings are also read from a .env file in the working directory when one
exists (-env to point elsewhere, -env "" to disable).

# Configuration

Required settings:

  - VOTER_ID_SALT (-voter-salt): Secret for deriving voter identities
  - DATABASE_URL (-d): Connection string, unless DATABASE_TYPE is memory

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): memory, sqlite or postgres (default: memory)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - registry: Ballot registry, voting rules and tallies
  - handlers: HTTP request handlers (voters, ballots, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Voter token generation and identity derivation
  - db: Connection, schema and registry persistence
  - report: Plain-text tally tables
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

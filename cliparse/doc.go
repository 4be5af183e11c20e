// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: memory, sqlite or postgres (default: memory)
  - DatabaseURL: connection string (required unless DatabaseType is memory)
  - VoterIDSalt: Secret for deriving voter IDs from tokens (required)
  - EnvFile: dotenv file read before the environment (default: .env)

# CLI Flags

	-p            Server port
	-t            Database type
	-d            Database URL
	-voter-salt   Voter ID salt
	-env          Dotenv file

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_TYPE  → -t
	DATABASE_URL   → -d
	VOTER_ID_SALT  → -voter-salt

CLI flags take precedence over environment variables, and variables already
in the environment take precedence over the dotenv file. A missing dotenv
file is not an error.

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	mux := router.NewRouter(reg, cfg)
*/
package cliparse

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first (via godotenv); real
environment variables take precedence, and CLI flags override both.

# Config Fields

  - Port: Server listen port (default: 3410)
  - DatabaseURL: Connection string or sqlite file path (required)
  - DatabaseType: "postgres" (default) or "sqlite"
  - TokenSecret: Session token signing secret (required)

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-token-secret  Session signing secret

# Environment Variables

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	TOKEN_SECRET  → -token-secret

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - TOKEN_SECRET must be provided
  - DATABASE_TYPE must be postgres or sqlite
*/
package cliparse

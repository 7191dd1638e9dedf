// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Ballotbox API server.

Ballotbox is an election administration and voting service: admins create
time-bounded elections and register candidates, voters cast a single vote
per election, and results are tallied by recounting raw vote records.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... TOKEN_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3410 -d "postgres://..." -token-secret "..."

A .env file in the working directory is also honored.

# Configuration

Required settings:

  - DATABASE_URL (-d): Connection string, or a sqlite file path
  - TOKEN_SECRET (-token-secret): Session token signing secret

Optional settings:

  - PORT (-p): Server port (default: 3410)
  - DATABASE_TYPE (-t): "postgres" (default) or "sqlite"

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (accounts, elections, candidates, voting, results, events)
  - election: Pure lifecycle/eligibility/tally engine
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, session extraction
  - models: Request/response types
  - auth: Passwords and session tokens
  - notify: Change notification hub (SSE)
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Ballotbox API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, hub)

# Endpoints

Health:

	GET /health

Accounts:

	POST /auth/register - Create voter account, returns session token
	POST /auth/login    - Exchange credentials for a session token
	GET  /auth/me       - Resolve the current identity

Elections (mutations require an admin session):

	GET    /elections      - List with candidates and derived status
	POST   /elections      - Create
	GET    /elections/{id} - Fetch with candidates
	DELETE /elections/{id} - Delete (cascades to candidates and votes)

Candidates (admin):

	POST   /elections/{id}/candidates               - Add
	DELETE /elections/{id}/candidates/{candidateID} - Remove

Voting (authenticated):

	POST /elections/{id}/votes   - Cast a vote (one per voter per election)
	GET  /elections/{id}/my-vote - Prior-vote lookup

Results:

	GET /elections/{id}/results - Recounted tally for one election
	GET /results                - Tallies for all ended elections

Change notifications:

	GET /events?table=elections - SSE stream of change markers

# Handler Initialization

The router creates handler instances with dependency injection; all handlers
receive the database connection and configuration, mutating handlers also get
the notification hub.
*/
package router

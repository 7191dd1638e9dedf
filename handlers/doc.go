// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Ballotbox API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AccountHandler: Registration, login, identity resolution
  - ElectionHandler: Election CRUD and derived lifecycle status
  - CandidateHandler: Candidate management within an election
  - VotingHandler: Vote casting and prior-vote lookup
  - ResultsHandler: Recounted tallies
  - EventsHandler: SSE change notifications

Handlers are created via constructor functions:

	votingHandler := handlers.NewVotingHandler(db, cfg, hub)

# Election Lifecycle

Status is derived from the clock, never trusted from storage:

	upcoming --(now >= start_time)--> active --(now > end_time)--> ended

Reads that observe a stale stored status fire a background correction write
(correctStaleStatus); the read path never waits on it or fails with it.

# Voting Flow

	POST /elections/{id}/votes  (Authorization: Bearer <token>)

The handler re-validates everything at commit time: session, election
existence, candidate membership, lifecycle phase, prior votes. The pre-check
gives precise errors; the UNIQUE (election_id, voter_id) constraint is the
actual duplicate-vote authority, and a violation on insert maps to the same
409 as the pre-check.

After a successful insert the election's total_votes counter is incremented
in a separate, best-effort statement. Failure is logged and ignored; the
counter is advisory and results always recount raw vote rows.

# Admin Operations

Election and candidate mutations require a session whose role claim is
"admin" (requireAdmin). New registrations are always voters.

# Change Notification

Every successful write publishes a notify.Change marker; browsers listening
on /events re-fetch in response.
*/
package handlers

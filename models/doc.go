// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: email, password, name
  - LoginRequest: email, password
  - CreateElectionRequest: title, description, start_time, end_time, image
  - AddCandidateRequest: name, party, bio, image
  - CastVoteRequest: candidate_id

# Response Types

Types for JSON responses:

  - SessionResponse: token, user
  - AddCandidateResponse: candidate_id
  - CastVoteResponse: vote_id, message
  - MyVoteResponse: has_voted, candidate_id
  - CandidateResult / ElectionResult: tallied results
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - User: account identity with voter/admin role
  - Election: time-bounded contest with derived lifecycle status
  - Candidate: an option within one election
  - Vote: a voter's single binding selection

# Constants

Election status values (derived from time, never authoritative in storage):

	StatusUpcoming = "upcoming"
	StatusActive   = "active"
	StatusEnded    = "ended"

Account roles:

	RoleVoter = "voter"
	RoleAdmin = "admin"
*/
package models

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Election status constants
const (
	StatusUpcoming = "upcoming"
	StatusActive   = "active"
	StatusEnded    = "ended"
)

// Account role constants
const (
	RoleVoter = "voter"
	RoleAdmin = "admin"
)

// Request types

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateElectionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Image       *string   `json:"image,omitempty"`
}

type AddCandidateRequest struct {
	Name  string  `json:"name"`
	Party string  `json:"party"`
	Bio   string  `json:"bio"`
	Image *string `json:"image,omitempty"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidate_id"`
}

// Response types

type SessionResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type AddCandidateResponse struct {
	CandidateID string `json:"candidate_id"`
}

type CastVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

type MyVoteResponse struct {
	HasVoted    bool    `json:"has_voted"`
	CandidateID *string `json:"candidate_id,omitempty"`
}

// Domain types

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Election struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartTime   time.Time   `json:"start_time"`
	EndTime     time.Time   `json:"end_time"`
	Status      string      `json:"status"`
	TotalVotes  int         `json:"total_votes"`
	Image       *string     `json:"image,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Candidates  []Candidate `json:"candidates,omitempty"`
}

type Candidate struct {
	ID         string    `json:"id"`
	ElectionID string    `json:"election_id"`
	Name       string    `json:"name"`
	Party      string    `json:"party"`
	Bio        string    `json:"bio"`
	Image      *string   `json:"image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Vote struct {
	ID          string    `json:"id"`
	ElectionID  string    `json:"election_id"`
	CandidateID string    `json:"candidate_id"`
	VoterID     string    `json:"-"` // Never expose in JSON
	CreatedAt   time.Time `json:"created_at"`
}

// Result types

type CandidateResult struct {
	CandidateID   string `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	Party         string `json:"party"`
	VoteCount     int    `json:"vote_count"`
}

type ElectionResult struct {
	ElectionID  string            `json:"election_id"`
	Title       string            `json:"title"`
	EndTime     time.Time         `json:"end_time"`
	BallotsCast int               `json:"ballots_cast"`
	Results     []CandidateResult `json:"results"`
	WinnerID    *string           `json:"winner_id,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

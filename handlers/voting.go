// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/election"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/notify"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	hub *notify.Hub
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config, hub *notify.Hub) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg, hub: hub}
}

// CastVote handles POST /elections/{id}/votes
//
// The eligibility pre-check here is a fast path for good error messages.
// The authority on duplicates is the UNIQUE (election_id, voter_id)
// constraint: two racing requests both pass the pre-check, and the insert
// decides which one wins.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	sess, err := requestSession(r, h.cfg)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, election.ErrNotAuthenticated.Error())
		return
	}

	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	// Find election
	e, err := scanElection(h.db.QueryRow(`
		SELECT `+electionColumns+`
		FROM elections WHERE id = $1
	`, electionID))

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Candidate must belong to this election
	var candidateExists bool
	err = h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM candidates WHERE id = $1 AND election_id = $2)
	`, req.CandidateID, electionID).Scan(&candidateExists)
	if err != nil {
		slog.Error("failed to query candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !candidateExists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found in this election")
		return
	}

	// Eligibility pre-check
	var hasVoted bool
	err = h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM votes WHERE election_id = $1 AND voter_id = $2)
	`, electionID, sess.UserID).Scan(&hasVoted)
	if err != nil {
		slog.Error("failed to query prior votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	now := time.Now()
	switch election.CanVote(e, hasVoted, now) {
	case election.AlreadyVoted:
		middleware.ErrorResponse(w, http.StatusConflict, election.ErrAlreadyVoted.Error())
		return
	case election.NotOpen:
		// Distinguish the two closed phases for the voter
		if election.DeriveStatus(e.StartTime, e.EndTime, now) == models.StatusUpcoming {
			middleware.ErrorResponse(w, http.StatusConflict, "Election has not started yet")
		} else {
			middleware.ErrorResponse(w, http.StatusConflict, "Election has already ended")
		}
		return
	}

	// Authoritative insert
	voteID := auth.NewID()
	_, err = h.db.Exec(`
		INSERT INTO votes (id, election_id, candidate_id, voter_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voteID, electionID, req.CandidateID, sess.UserID, now)

	if err != nil {
		if isUniqueViolation(err) {
			// Another vote by this voter won the race
			middleware.ErrorResponse(w, http.StatusConflict, election.ErrAlreadyVoted.Error())
			return
		}
		slog.Error("failed to insert vote", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	// Advisory counter: best-effort, never fails the vote. Results recount
	// raw vote rows, so drift here only affects the display value.
	_, err = h.db.Exec(`
		UPDATE elections SET total_votes = total_votes + 1, updated_at = $1 WHERE id = $2
	`, now, electionID)
	if err != nil {
		slog.Warn("failed to increment vote counter", "error", err, "election_id", electionID)
	}

	slog.Info("vote cast", "election_id", electionID, "candidate_id", req.CandidateID)
	h.hub.Publish(notify.Change{Table: "votes", ID: electionID, Op: notify.OpInsert})
	h.hub.Publish(notify.Change{Table: "elections", ID: electionID, Op: notify.OpUpdate})

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID:  voteID,
		Message: "Vote cast successfully",
	})
}

// MyVote handles GET /elections/{id}/my-vote
// Tells the voter whether they have voted, and for whom.
func (h *VotingHandler) MyVote(w http.ResponseWriter, r *http.Request) {
	sess, err := requestSession(r, h.cfg)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	var candidateID string
	err = h.db.QueryRow(`
		SELECT candidate_id FROM votes WHERE election_id = $1 AND voter_id = $2
	`, electionID, sess.UserID).Scan(&candidateID)

	if err == sql.ErrNoRows {
		middleware.JSONResponse(w, http.StatusOK, models.MyVoteResponse{HasVoted: false})
		return
	}
	if err != nil {
		slog.Error("failed to query vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MyVoteResponse{
		HasVoted:    true,
		CandidateID: &candidateID,
	})
}

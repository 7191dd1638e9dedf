// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/election"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

const electionColumns = `id, title, description, start_time, end_time, status, total_votes, image, created_at, updated_at`

// isUniqueViolation reports whether err is a uniqueness constraint rejection
// from either supported driver. This is the authoritative duplicate signal:
// the application-level pre-checks are only a fast path.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// requestSession resolves the caller's identity from the bearer token.
// Returns election.ErrNotAuthenticated when no valid session is present.
func requestSession(r *http.Request, cfg cliparse.Config) (auth.Session, error) {
	token := middleware.BearerToken(r)
	if token == "" {
		return auth.Session{}, election.ErrNotAuthenticated
	}
	sess, err := auth.ParseSessionToken(token, cfg.TokenSecret)
	if err != nil {
		return auth.Session{}, election.ErrNotAuthenticated
	}
	return sess, nil
}

// requireAdmin resolves the session and writes the error response itself
// when the caller is unauthenticated or lacks the admin role.
func requireAdmin(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) (auth.Session, bool) {
	sess, err := requestSession(r, cfg)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return auth.Session{}, false
	}
	if !sess.IsAdmin() {
		middleware.ErrorResponse(w, http.StatusForbidden, "Administrator role required")
		return auth.Session{}, false
	}
	return sess, true
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanElection(row rowScanner) (models.Election, error) {
	var e models.Election
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.StartTime, &e.EndTime,
		&e.Status, &e.TotalVotes, &e.Image, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// queryCandidates fetches all candidates for an election in creation order.
// Creation order matters: the tally tie-break favors the earlier candidate.
func queryCandidates(db *sql.DB, electionID string) ([]models.Candidate, error) {
	rows, err := db.Query(`
		SELECT id, election_id, name, party, bio, image, created_at
		FROM candidates
		WHERE election_id = $1
		ORDER BY created_at, id
	`, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Party, &c.Bio, &c.Image, &c.CreatedAt); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// queryVotes fetches all votes for an election.
func queryVotes(db *sql.DB, electionID string) ([]models.Vote, error) {
	rows, err := db.Query(`
		SELECT id, election_id, candidate_id, voter_id, created_at
		FROM votes
		WHERE election_id = $1
	`, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.ElectionID, &v.CandidateID, &v.VoterID, &v.CreatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// correctStaleStatus writes the derived status back when the stored value has
// gone stale. Fire-and-forget: called in a goroutine, logs on failure, and
// never couples to the read path that observed the staleness.
func correctStaleStatus(db *sql.DB, electionID, derived string) {
	_, err := db.Exec(`
		UPDATE elections SET status = $1, updated_at = $2 WHERE id = $3
	`, derived, time.Now(), electionID)
	if err != nil {
		slog.Warn("failed to correct stale election status",
			"election_id", electionID, "status", derived, "error", err)
	}
}

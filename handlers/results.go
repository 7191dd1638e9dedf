// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/election"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetElectionResults handles GET /elections/{id}/results
// Always recounts raw vote rows; the total_votes counter is display-only.
func (h *ResultsHandler) GetElectionResults(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

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

	result, err := h.buildResult(e)
	if err != nil {
		slog.Error("failed to build results", "error", err, "election_id", e.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// ListResults handles GET /results
// Returns tallies for every ended election, the results page's initial load.
func (h *ResultsHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT ` + electionColumns + `
		FROM elections
		ORDER BY end_time DESC
	`)
	if err != nil {
		slog.Error("failed to query elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	elections := []models.Election{}
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			rows.Close()
			slog.Error("failed to scan election", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		elections = append(elections, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		slog.Error("failed to iterate elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	rows.Close()

	now := time.Now()
	results := []models.ElectionResult{}
	for _, e := range elections {
		derived := election.DeriveStatus(e.StartTime, e.EndTime, now)
		if derived != e.Status {
			go correctStaleStatus(h.db, e.ID, derived)
		}
		if derived != models.StatusEnded {
			continue
		}

		result, err := h.buildResult(e)
		if err != nil {
			slog.Error("failed to build results", "error", err, "election_id", e.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		results = append(results, result)
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

func (h *ResultsHandler) buildResult(e models.Election) (models.ElectionResult, error) {
	candidates, err := queryCandidates(h.db, e.ID)
	if err != nil {
		return models.ElectionResult{}, err
	}
	votes, err := queryVotes(h.db, e.ID)
	if err != nil {
		return models.ElectionResult{}, err
	}

	tallied := election.Tally(candidates, votes)

	var winnerID *string
	if winner := election.Winner(tallied); winner != nil {
		winnerID = &winner.CandidateID
	}

	return models.ElectionResult{
		ElectionID:  e.ID,
		Title:       e.Title,
		EndTime:     e.EndTime,
		BallotsCast: len(votes),
		Results:     tallied,
		WinnerID:    winnerID,
	}, nil
}

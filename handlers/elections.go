// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/election"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/notify"
)

type ElectionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	hub *notify.Hub
}

func NewElectionHandler(db *sql.DB, cfg cliparse.Config, hub *notify.Hub) *ElectionHandler {
	return &ElectionHandler{db: db, cfg: cfg, hub: hub}
}

// List handles GET /elections
// Returns every election with its candidates, newest first. Status is
// derived from the clock on each read; stale stored values get a
// fire-and-forget correction write.
func (h *ElectionHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT ` + electionColumns + `
		FROM elections
		ORDER BY created_at DESC
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
	for i := range elections {
		e := &elections[i]

		derived := election.DeriveStatus(e.StartTime, e.EndTime, now)
		if derived != e.Status {
			go correctStaleStatus(h.db, e.ID, derived)
			e.Status = derived
		}

		candidates, err := queryCandidates(h.db, e.ID)
		if err != nil {
			slog.Error("failed to query candidates", "error", err, "election_id", e.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		e.Candidates = candidates
	}

	middleware.JSONResponse(w, http.StatusOK, elections)
}

// Get handles GET /elections/{id}
func (h *ElectionHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	derived := election.DeriveStatus(e.StartTime, e.EndTime, time.Now())
	if derived != e.Status {
		go correctStaleStatus(h.db, e.ID, derived)
		e.Status = derived
	}

	candidates, err := queryCandidates(h.db, e.ID)
	if err != nil {
		slog.Error("failed to query candidates", "error", err, "election_id", e.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	e.Candidates = candidates

	middleware.JSONResponse(w, http.StatusOK, e)
}

// Create handles POST /elections (admin only)
func (h *ElectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.cfg); !ok {
		return
	}

	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_time and end_time are required")
		return
	}
	if !req.EndTime.After(req.StartTime) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "end_time must be after start_time")
		return
	}

	now := time.Now()
	e := models.Election{
		ID:          auth.NewID(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      election.DeriveStatus(req.StartTime, req.EndTime, now),
		TotalVotes:  0,
		Image:       req.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
		Candidates:  []models.Candidate{},
	}

	_, err := h.db.Exec(`
		INSERT INTO elections (id, title, description, start_time, end_time, status, total_votes, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, e.ID, e.Title, e.Description, e.StartTime, e.EndTime, e.Status, e.TotalVotes, e.Image, e.CreatedAt, e.UpdatedAt)

	if err != nil {
		slog.Error("failed to insert election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	slog.Info("election created", "election_id", e.ID, "title", e.Title)
	h.hub.Publish(notify.Change{Table: "elections", ID: e.ID, Op: notify.OpInsert})

	middleware.JSONResponse(w, http.StatusCreated, e)
}

// Delete handles DELETE /elections/{id} (admin only)
// Cascades to candidates and votes via the schema's foreign keys.
func (h *ElectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.cfg); !ok {
		return
	}

	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	result, err := h.db.Exec(`DELETE FROM elections WHERE id = $1`, electionID)
	if err != nil {
		slog.Error("failed to delete election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete election")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete election")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	slog.Info("election deleted", "election_id", electionID)
	h.hub.Publish(notify.Change{Table: "elections", ID: electionID, Op: notify.OpDelete})

	w.WriteHeader(http.StatusNoContent)
}

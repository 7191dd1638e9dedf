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
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/notify"
)

type CandidateHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	hub *notify.Hub
}

func NewCandidateHandler(db *sql.DB, cfg cliparse.Config, hub *notify.Hub) *CandidateHandler {
	return &CandidateHandler{db: db, cfg: cfg, hub: hub}
}

// Add handles POST /elections/{id}/candidates (admin only)
func (h *CandidateHandler) Add(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.cfg); !ok {
		return
	}

	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	// Check election exists
	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM elections WHERE id = $1)
	`, electionID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	candidateID := auth.NewID()
	_, err = h.db.Exec(`
		INSERT INTO candidates (id, election_id, name, party, bio, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, candidateID, electionID, strings.TrimSpace(req.Name), req.Party, req.Bio, req.Image, time.Now())

	if err != nil {
		slog.Error("failed to insert candidate", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add candidate")
		return
	}

	slog.Info("candidate added", "election_id", electionID, "candidate_id", candidateID)
	h.hub.Publish(notify.Change{Table: "candidates", ID: electionID, Op: notify.OpInsert})

	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{
		CandidateID: candidateID,
	})
}

// Delete handles DELETE /elections/{id}/candidates/{candidateID} (admin only)
// The election id in the path is part of the match: a candidate id from a
// different election deletes nothing and returns 404.
func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.cfg); !ok {
		return
	}

	electionID := r.PathValue("id")
	candidateID := r.PathValue("candidateID")
	if electionID == "" || candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id and candidate id are required")
		return
	}

	result, err := h.db.Exec(`
		DELETE FROM candidates WHERE id = $1 AND election_id = $2
	`, candidateID, electionID)
	if err != nil {
		slog.Error("failed to delete candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete candidate")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete candidate")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found in this election")
		return
	}

	slog.Info("candidate deleted", "election_id", electionID, "candidate_id", candidateID)
	h.hub.Publish(notify.Change{Table: "candidates", ID: electionID, Op: notify.OpDelete})

	w.WriteHeader(http.StatusNoContent)
}

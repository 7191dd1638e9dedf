// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/notify"
	"github.com/danielhkuo/ballotbox/testutil"
)

func TestAddCandidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewCandidateHandler(db, cfg, notify.NewHub())

	admin := testutil.CreateTestUser(t, db, "admin@example.com", models.RoleAdmin)
	adminToken := testutil.SessionFor(t, cfg, admin)
	voter := testutil.CreateTestUser(t, db, "voter@example.com", models.RoleVoter)
	voterToken := testutil.SessionFor(t, cfg, voter)

	now := time.Now()
	electionID := testutil.CreateTestElection(t, db, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusUpcoming)

	t.Run("admin adds candidate", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/elections/"+electionID+"/candidates",
			models.AddCandidateRequest{Name: "Alice", Party: "Red", Bio: "Incumbent"},
			map[string]string{"Authorization": "Bearer " + adminToken})
		req.SetPathValue("id", electionID)
		w := httptest.NewRecorder()
		handler.Add(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.AddCandidateResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.CandidateID == "" {
			t.Error("Expected candidate id")
		}
	})

	t.Run("voter cannot add", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/elections/"+electionID+"/candidates",
			models.AddCandidateRequest{Name: "Mallory"},
			map[string]string{"Authorization": "Bearer " + voterToken})
		req.SetPathValue("id", electionID)
		w := httptest.NewRecorder()
		handler.Add(w, req)

		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("unauthenticated cannot add", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/elections/"+electionID+"/candidates",
			models.AddCandidateRequest{Name: "Nobody"}, nil)
		req.SetPathValue("id", electionID)
		w := httptest.NewRecorder()
		handler.Add(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("missing name", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/elections/"+electionID+"/candidates",
			models.AddCandidateRequest{Party: "Red"},
			map[string]string{"Authorization": "Bearer " + adminToken})
		req.SetPathValue("id", electionID)
		w := httptest.NewRecorder()
		handler.Add(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown election", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/elections/nonexistent/candidates",
			models.AddCandidateRequest{Name: "Alice"},
			map[string]string{"Authorization": "Bearer " + adminToken})
		req.SetPathValue("id", "nonexistent")
		w := httptest.NewRecorder()
		handler.Add(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestDeleteCandidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewCandidateHandler(db, cfg, notify.NewHub())

	admin := testutil.CreateTestUser(t, db, "admin@example.com", models.RoleAdmin)
	adminToken := testutil.SessionFor(t, cfg, admin)

	now := time.Now()
	electionID := testutil.CreateTestElection(t, db, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusUpcoming)
	candidateID := testutil.AddTestCandidate(t, db, electionID, "Alice", "Red")

	otherElection := testutil.CreateTestElection(t, db, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusUpcoming)

	t.Run("candidate in wrong election", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/elections/"+otherElection+"/candidates/"+candidateID, nil,
			map[string]string{"Authorization": "Bearer " + adminToken})
		req.SetPathValue("id", otherElection)
		req.SetPathValue("candidateID", candidateID)
		w := httptest.NewRecorder()
		handler.Delete(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)

		// The candidate must survive a mismatched delete
		var exists bool
		if err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM candidates WHERE id = $1)`, candidateID).Scan(&exists); err != nil {
			t.Fatalf("Failed to check candidate: %v", err)
		}
		if !exists {
			t.Error("Candidate was deleted through the wrong election")
		}
	})

	t.Run("admin deletes candidate", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/elections/"+electionID+"/candidates/"+candidateID, nil,
			map[string]string{"Authorization": "Bearer " + adminToken})
		req.SetPathValue("id", electionID)
		req.SetPathValue("candidateID", candidateID)
		w := httptest.NewRecorder()
		handler.Delete(w, req)

		testutil.AssertStatus(t, w, http.StatusNoContent)
	})

	t.Run("delete twice is not found", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/elections/"+electionID+"/candidates/"+candidateID, nil,
			map[string]string{"Authorization": "Bearer " + adminToken})
		req.SetPathValue("id", electionID)
		req.SetPathValue("candidateID", candidateID)
		w := httptest.NewRecorder()
		handler.Delete(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/testutil"
)

func TestGetElectionResults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	now := time.Now()
	electionID := testutil.CreateTestElection(t, db, now.Add(-2*time.Hour), now.Add(-time.Hour), models.StatusEnded)
	alice := testutil.AddTestCandidate(t, db, electionID, "Alice", "Red")
	bob := testutil.AddTestCandidate(t, db, electionID, "Bob", "Blue")
	carol := testutil.AddTestCandidate(t, db, electionID, "Carol", "Green")

	// Three ballots for Alice, one for Bob, none for Carol
	for i := 0; i < 3; i++ {
		voter := testutil.CreateTestUser(t, db, fmt.Sprintf("alice-fan-%d@example.com", i), models.RoleVoter)
		testutil.CastTestVote(t, db, electionID, alice, voter.ID)
	}
	bobFan := testutil.CreateTestUser(t, db, "bob-fan@example.com", models.RoleVoter)
	testutil.CastTestVote(t, db, electionID, bob, bobFan.ID)

	req := testutil.MakeRequest("GET", "/elections/"+electionID+"/results", nil, nil)
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()
	handler.GetElectionResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.ElectionResult
	testutil.AssertJSON(t, w, &result)

	if result.BallotsCast != 4 {
		t.Errorf("Expected 4 ballots, got %d", result.BallotsCast)
	}
	if len(result.Results) != 3 {
		t.Fatalf("Expected all 3 candidates in results, got %d", len(result.Results))
	}

	counts := map[string]int{}
	for _, cr := range result.Results {
		counts[cr.CandidateID] = cr.VoteCount
	}
	if counts[alice] != 3 || counts[bob] != 1 || counts[carol] != 0 {
		t.Errorf("Unexpected counts: %v", counts)
	}

	if result.WinnerID == nil || *result.WinnerID != alice {
		t.Error("Expected Alice as winner")
	}
}

func TestGetElectionResults_RecountIgnoresCounter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	now := time.Now()
	electionID := testutil.CreateTestElection(t, db, now.Add(-2*time.Hour), now.Add(-time.Hour), models.StatusEnded)
	alice := testutil.AddTestCandidate(t, db, electionID, "Alice", "Red")

	voter := testutil.CreateTestUser(t, db, "voter@example.com", models.RoleVoter)
	testutil.CastTestVote(t, db, electionID, alice, voter.ID)

	// Drift the advisory counter; the recount must not see it.
	if _, err := db.Exec(`UPDATE elections SET total_votes = 99 WHERE id = $1`, electionID); err != nil {
		t.Fatalf("Failed to drift counter: %v", err)
	}

	req := testutil.MakeRequest("GET", "/elections/"+electionID+"/results", nil, nil)
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()
	handler.GetElectionResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.ElectionResult
	testutil.AssertJSON(t, w, &result)
	if result.BallotsCast != 1 {
		t.Errorf("Recount should count raw rows, got %d", result.BallotsCast)
	}
}

func TestGetElectionResults_TieGoesToFirstCandidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	now := time.Now()
	electionID := testutil.CreateTestElection(t, db, now.Add(-2*time.Hour), now.Add(-time.Hour), models.StatusEnded)
	alice := testutil.AddTestCandidate(t, db, electionID, "Alice", "Red")
	bob := testutil.AddTestCandidate(t, db, electionID, "Bob", "Blue")

	v1 := testutil.CreateTestUser(t, db, "one@example.com", models.RoleVoter)
	v2 := testutil.CreateTestUser(t, db, "two@example.com", models.RoleVoter)
	testutil.CastTestVote(t, db, electionID, bob, v1.ID)
	testutil.CastTestVote(t, db, electionID, alice, v2.ID)

	req := testutil.MakeRequest("GET", "/elections/"+electionID+"/results", nil, nil)
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()
	handler.GetElectionResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.ElectionResult
	testutil.AssertJSON(t, w, &result)
	if result.WinnerID == nil || *result.WinnerID != alice {
		t.Error("Tie should go to the earlier-added candidate")
	}
}

func TestGetElectionResults_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	req := testutil.MakeRequest("GET", "/elections/nonexistent/results", nil, nil)
	req.SetPathValue("id", "nonexistent")
	w := httptest.NewRecorder()
	handler.GetElectionResults(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestListResults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	now := time.Now()

	endedID := testutil.CreateTestElection(t, db, now.Add(-3*time.Hour), now.Add(-2*time.Hour), models.StatusEnded)
	alice := testutil.AddTestCandidate(t, db, endedID, "Alice", "Red")
	voter := testutil.CreateTestUser(t, db, "voter@example.com", models.RoleVoter)
	testutil.CastTestVote(t, db, endedID, alice, voter.ID)

	// Stored as active but its window has passed; must still appear.
	staleID := testutil.CreateTestElection(t, db, now.Add(-2*time.Hour), now.Add(-time.Hour), models.StatusActive)
	testutil.AddTestCandidate(t, db, staleID, "Bob", "Blue")

	// Genuinely active; must not appear.
	testutil.CreateTestElection(t, db, now.Add(-time.Hour), now.Add(time.Hour), models.StatusActive)

	// Upcoming; must not appear.
	testutil.CreateTestElection(t, db, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusUpcoming)

	req := testutil.MakeRequest("GET", "/results", nil, nil)
	w := httptest.NewRecorder()
	handler.ListResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var results []models.ElectionResult
	testutil.AssertJSON(t, w, &results)
	if len(results) != 2 {
		t.Fatalf("Expected 2 ended elections, got %d", len(results))
	}
	// Ordered by end_time, most recent close first
	if results[0].ElectionID != staleID || results[1].ElectionID != endedID {
		t.Error("Results not ordered by end time descending")
	}
	if results[1].BallotsCast != 1 {
		t.Errorf("Expected 1 ballot in the older election, got %d", results[1].BallotsCast)
	}
}

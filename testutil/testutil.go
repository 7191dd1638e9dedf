// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	appdb "github.com/danielhkuo/ballotbox/db"
	"github.com/danielhkuo/ballotbox/models"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full schema.
// Single connection keeps the in-memory database alive and the tests
// predictable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := appdb.CreateSchema(db, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3410,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		TokenSecret:  "test-token-secret",
	}
}

// CreateTestUser inserts an account and returns it.
// role should be models.RoleVoter or models.RoleAdmin.
func CreateTestUser(t *testing.T, db *sql.DB, email, role string) models.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	user := models.User{
		ID:        auth.NewID(),
		Email:     email,
		Name:      "Test User",
		Role:      role,
		CreatedAt: time.Now(),
	}

	_, err = db.Exec(`
		INSERT INTO users (id, email, password_hash, name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Email, hash, user.Name, user.Role, user.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// SessionFor returns a signed session token for the user.
func SessionFor(t *testing.T, cfg cliparse.Config, user models.User) string {
	t.Helper()

	token, err := auth.GenerateSessionToken(user, cfg.TokenSecret, time.Now())
	if err != nil {
		t.Fatalf("Failed to generate session token: %v", err)
	}
	return token
}

// CreateTestElection inserts an election with the given time bounds and
// stored status, and returns its ID. The stored status is deliberately
// caller-controlled so tests can exercise stale-status correction.
func CreateTestElection(t *testing.T, db *sql.DB, start, end time.Time, status string) string {
	t.Helper()

	id := auth.NewID()
	now := time.Now()
	_, err := db.Exec(`
		INSERT INTO elections (id, title, description, start_time, end_time, status, total_votes, created_at, updated_at)
		VALUES ($1, 'Test Election', 'A test election', $2, $3, $4, 0, $5, $6)
	`, id, start, end, status, now, now)
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return id
}

// AddTestCandidate adds a candidate to an election and returns its ID.
// Creation times are spaced so candidate order is stable in queries.
func AddTestCandidate(t *testing.T, db *sql.DB, electionID, name, party string) string {
	t.Helper()

	id := auth.NewID()
	_, err := db.Exec(`
		INSERT INTO candidates (id, election_id, name, party, bio, created_at)
		VALUES ($1, $2, $3, $4, '', $5)
	`, id, electionID, name, party, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}
	time.Sleep(time.Millisecond)

	return id
}

// CastTestVote inserts a vote row directly and returns its ID.
func CastTestVote(t *testing.T, db *sql.DB, electionID, candidateID, voterID string) string {
	t.Helper()

	id := auth.NewID()
	_, err := db.Exec(`
		INSERT INTO votes (id, election_id, candidate_id, voter_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, electionID, candidateID, voterID, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

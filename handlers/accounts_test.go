// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/testutil"
)

func TestRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAccountHandler(db, cfg)

	tests := []struct {
		name           string
		requestBody    models.RegisterRequest
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.SessionResponse)
	}{
		{
			name: "valid registration",
			requestBody: models.RegisterRequest{
				Email:    "Voter@Example.com",
				Password: "password123",
				Name:     "New Voter",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.SessionResponse) {
				if resp.Token == "" {
					t.Error("Expected non-empty session token")
				}
				if resp.User.Email != "voter@example.com" {
					t.Errorf("Email should be lowercased, got %s", resp.User.Email)
				}
				if resp.User.Role != models.RoleVoter {
					t.Errorf("New accounts must be voters, got role %s", resp.User.Role)
				}

				// Token must resolve to the created account
				sess, err := auth.ParseSessionToken(resp.Token, cfg.TokenSecret)
				if err != nil {
					t.Fatalf("Returned token does not parse: %v", err)
				}
				if sess.UserID != resp.User.ID {
					t.Error("Token subject does not match created user")
				}
			},
		},
		{
			name: "missing email",
			requestBody: models.RegisterRequest{
				Password: "password123",
				Name:     "No Email",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "short password",
			requestBody: models.RegisterRequest{
				Email:    "short@example.com",
				Password: "short",
				Name:     "Short Password",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing name",
			requestBody: models.RegisterRequest{
				Email:    "noname@example.com",
				Password: "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/auth/register", tc.requestBody, nil)
			w := httptest.NewRecorder()
			handler.Register(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
			if tc.checkResponse != nil {
				var resp models.SessionResponse
				testutil.AssertJSON(t, w, &resp)
				tc.checkResponse(t, &resp)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAccountHandler(db, cfg)

	testutil.CreateTestUser(t, db, "taken@example.com", models.RoleVoter)

	req := testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
		Email:    "taken@example.com",
		Password: "password123",
		Name:     "Second Claimant",
	}, nil)
	w := httptest.NewRecorder()
	handler.Register(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAccountHandler(db, cfg)

	// CreateTestUser hashes "password123"
	user := testutil.CreateTestUser(t, db, "login@example.com", models.RoleVoter)

	t.Run("valid credentials", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
			Email:    "login@example.com",
			Password: "password123",
		}, nil)
		w := httptest.NewRecorder()
		handler.Login(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.SessionResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.User.ID != user.ID {
			t.Error("Logged-in user does not match")
		}
		if resp.Token == "" {
			t.Error("Expected session token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
			Email:    "login@example.com",
			Password: "wrong-password",
		}, nil)
		w := httptest.NewRecorder()
		handler.Login(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		}, nil)
		w := httptest.NewRecorder()
		handler.Login(w, req)

		// Same status as a bad password
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAccountHandler(db, cfg)

	admin := testutil.CreateTestUser(t, db, "admin@example.com", models.RoleAdmin)
	token := testutil.SessionFor(t, cfg, admin)

	t.Run("valid session", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/auth/me", nil, map[string]string{
			"Authorization": "Bearer " + token,
		})
		w := httptest.NewRecorder()
		handler.Me(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var user models.User
		testutil.AssertJSON(t, w, &user)
		if user.ID != admin.ID || user.Role != models.RoleAdmin {
			t.Errorf("Unexpected identity: %+v", user)
		}
	})

	t.Run("no session", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/auth/me", nil, nil)
		w := httptest.NewRecorder()
		handler.Me(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/auth/me", nil, map[string]string{
			"Authorization": "Bearer not-a-token",
		})
		w := httptest.NewRecorder()
		handler.Me(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

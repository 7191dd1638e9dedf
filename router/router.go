// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/handlers"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/notify"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, hub *notify.Hub) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(db, cfg)
	electionHandler := handlers.NewElectionHandler(db, cfg, hub)
	candidateHandler := handlers.NewCandidateHandler(db, cfg, hub)
	votingHandler := handlers.NewVotingHandler(db, cfg, hub)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	eventsHandler := handlers.NewEventsHandler(hub)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("GET /auth/me", middleware.WithLogging(accountHandler.Me))

	// Elections (mutations are admin-only)
	mux.HandleFunc("GET /elections", middleware.WithLogging(electionHandler.List))
	mux.HandleFunc("POST /elections", middleware.WithLogging(electionHandler.Create))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.Get))
	mux.HandleFunc("DELETE /elections/{id}", middleware.WithLogging(electionHandler.Delete))

	// Candidates (admin-only)
	mux.HandleFunc("POST /elections/{id}/candidates", middleware.WithLogging(candidateHandler.Add))
	mux.HandleFunc("DELETE /elections/{id}/candidates/{candidateID}", middleware.WithLogging(candidateHandler.Delete))

	// Voting (authenticated)
	mux.HandleFunc("POST /elections/{id}/votes", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /elections/{id}/my-vote", middleware.WithLogging(votingHandler.MyVote))

	// Results (recounted from raw vote rows)
	mux.HandleFunc("GET /elections/{id}/results", middleware.WithLogging(resultsHandler.GetElectionResults))
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.ListResults))

	// Change notifications
	mux.HandleFunc("GET /events", eventsHandler.Stream)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotbox API v1"))
	})

	return mux
}

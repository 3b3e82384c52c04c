// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/athishulleri01/poll-system/auth"
	"github.com/athishulleri01/poll-system/cliparse"
	"github.com/athishulleri01/poll-system/db"
	"github.com/athishulleri01/poll-system/handlers"
	"github.com/athishulleri01/poll-system/middleware"
	"github.com/athishulleri01/poll-system/results"
	"github.com/athishulleri01/poll-system/views"
	"github.com/athishulleri01/poll-system/voting"
)

func NewRouter(store *db.Store, cfg cliparse.Config) (*chi.Mux, error) {
	authz, err := auth.NewAuthorizer()
	if err != nil {
		return nil, err
	}
	renderer, err := views.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)

	// Initialize services and handlers
	votingService := voting.NewService(store, authz)
	reporter := results.NewReporter(store)

	accountHandler := handlers.NewAccountHandler(store, sessions)
	pollHandler := handlers.NewPollHandler(votingService, renderer)
	votingHandler := handlers.NewVotingHandler(votingService)
	resultsHandler := handlers.NewResultsHandler(reporter, votingService, renderer)

	r := chi.NewRouter()
	r.Use(middleware.WithLogging)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(middleware.NewAuthenticator(sessions, store).Authenticate)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Method("GET", "/metrics", promhttp.Handler())

	// Accounts
	r.Post("/accounts/register", accountHandler.Register)
	r.Post("/accounts/login", accountHandler.Login)
	r.Post("/accounts/logout", accountHandler.Logout)

	// Poll listing (public, voted flags when signed in)
	r.Get("/", pollHandler.ListPage)
	r.Get("/polls", pollHandler.ListPolls)

	// Voting (signed in)
	r.Get("/polls/{id}", middleware.RequireUser(votingHandler.GetPoll))
	r.With(httprate.LimitByIP(cfg.VoteRateLimit, time.Minute)).
		Post("/polls/{id}/votes", middleware.RequireUser(votingHandler.CastVote))
	r.Get("/me/votes", middleware.RequireUser(votingHandler.MyVotes))

	// Results (public)
	r.Get("/polls/{id}/results", resultsHandler.ResultsPage)
	r.Get("/polls/{id}/results.json", resultsHandler.ResultsJSON)
	r.Get("/polls/{id}/export.csv", resultsHandler.ExportCSV)

	// Poll management (staff, enforced by the voting service)
	r.Route("/admin/polls", func(r chi.Router) {
		r.Post("/", middleware.RequireUser(pollHandler.CreatePoll))
		r.Get("/", middleware.RequireUser(pollHandler.ManagePolls))
		r.Post("/{id}/toggle", middleware.RequireUser(pollHandler.TogglePoll))
	})

	return r, nil
}

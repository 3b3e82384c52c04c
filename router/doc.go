// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the poll server.

# Route Registration

NewRouter builds a chi.Mux with every endpoint, wiring the voting service,
results reporter and HTML renderer to the store:

	mux, err := router.NewRouter(store, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Accounts:

	POST /accounts/register - Create account, start session
	POST /accounts/login    - Start session
	POST /accounts/logout   - Clear session cookie

Polls and voting (session required except for listings):

	GET  /                 - HTML list of active polls
	GET  /polls            - Active polls, newest first
	GET  /polls/{id}       - Poll with options
	POST /polls/{id}/votes - Cast the caller's vote (rate limited per IP)
	GET  /me/votes         - Caller's votes

Results (public):

	GET /polls/{id}/results      - HTML tally, with the caller's vote
	GET /polls/{id}/results.json - JSON tally
	GET /polls/{id}/export.csv   - CSV export with vote records

Poll management (staff):

	POST /admin/polls             - Create poll with options
	GET  /admin/polls             - All polls, including inactive
	POST /admin/polls/{id}/toggle - Flip is_active

# Middleware

Every request passes through request logging, CORS (when CORS_ORIGINS is
set) and session resolution. Staff checks happen in the voting service so
a signed-in member gets 403 and an anonymous caller 401.
*/
package router

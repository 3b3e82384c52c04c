// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the poll server.

# Handler Types

Each handler is a thin adapter over a service:

  - AccountHandler: Register, login and logout
  - PollHandler: Poll listing and staff poll management
  - VotingHandler: Poll detail, vote casting and the caller's votes
  - ResultsHandler: HTML, JSON and CSV results

	pollHandler := handlers.NewPollHandler(votingService, renderer)

The signed-in user comes from middleware.UserFromContext; routes that need
one are wrapped in middleware.RequireUser.

# Error Mapping

Voting errors become HTTP responses in one place:

	voting.ErrNotFound          → 404
	voting.ErrExpired           → 303 to /polls/{id}/results
	voting.ErrAlreadyVoted      → 409 (includes ErrIntegrityConflict)
	voting.ErrInvalidInput      → 400 (includes ErrInvalidOption)
	voting.ErrForbidden         → 403
	anything else               → 500, logged

# Results

Results are public and computed from vote rows on every request. The CSV
export is served as an attachment named poll_<id>_results.csv.
*/
package handlers

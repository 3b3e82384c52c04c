// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Request Logging

WithLogging logs the start and completion of every request and records its
latency in the poll_http_request_duration_seconds histogram, labelled with
the chi route pattern:

	r.Use(middleware.WithLogging)

# Sessions

Authenticator resolves a session token from "Authorization: Bearer" or the
"session" cookie and stores the user in the request context. RequireUser
turns anonymous requests away with 401:

	r.Use(authn.Authenticate)
	r.Get("/me/votes", middleware.RequireUser(h.MyVotes))

	user, ok := middleware.UserFromContext(r.Context())

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

DecodeAndValidate parses a JSON body and runs go-playground/validator on the
struct's validate tags, answering 400 itself on failure:

	var req models.CastVoteRequest
	if !middleware.DecodeAndValidate(w, r, &req) {
		return
	}
*/
package middleware

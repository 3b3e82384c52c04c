// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/athishulleri01/poll-system/middleware"
	"github.com/athishulleri01/poll-system/models"
	"github.com/athishulleri01/poll-system/voting"
)

// writeError maps voting errors onto HTTP responses. Expired polls redirect
// to their results page; anything unrecognised is logged and answered 500.
func writeError(w http.ResponseWriter, r *http.Request, pollID string, err error) {
	switch {
	case errors.Is(err, voting.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	case errors.Is(err, voting.ErrExpired):
		http.Redirect(w, r, resultsURL(pollID), http.StatusSeeOther)
	case errors.Is(err, voting.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, voting.ErrAlreadyVoted.Error())
	case errors.Is(err, voting.ErrInvalidInput):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, voting.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}

func resultsURL(pollID string) string {
	return "/polls/" + pollID + "/results"
}

// currentUser returns the authenticated user or nil.
func currentUser(r *http.Request) *models.User {
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		return &user
	}
	return nil
}

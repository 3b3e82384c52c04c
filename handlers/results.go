// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/athishulleri01/poll-system/middleware"
	"github.com/athishulleri01/poll-system/results"
	"github.com/athishulleri01/poll-system/views"
	"github.com/athishulleri01/poll-system/voting"
)

type ResultsHandler struct {
	reporter *results.Reporter
	votes    *voting.Service
	views    *views.Renderer
}

func NewResultsHandler(reporter *results.Reporter, votes *voting.Service, renderer *views.Renderer) *ResultsHandler {
	return &ResultsHandler{reporter: reporter, votes: votes, views: renderer}
}

// ResultsPage handles GET /polls/{id}/results
func (h *ResultsHandler) ResultsPage(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	poll, tally, err := h.reporter.Tally(r.Context(), pollID)
	if !h.ok(w, r, err) {
		return
	}

	page := views.ResultsPage{
		User:    currentUser(r),
		Poll:    poll,
		Tally:   tally,
		Expired: poll.IsExpired(time.Now()),
	}
	if page.User != nil {
		page.UserVote, err = h.votes.UserVote(r.Context(), *page.User, poll.ID)
		if !h.ok(w, r, err) {
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.views.Results(w, page); err != nil {
		slog.Error("failed to render results", "poll_id", poll.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render page")
	}
}

// ResultsJSON handles GET /polls/{id}/results.json
func (h *ResultsHandler) ResultsJSON(w http.ResponseWriter, r *http.Request) {
	_, tally, err := h.reporter.Tally(r.Context(), r.PathValue("id"))
	if !h.ok(w, r, err) {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tally)
}

// ExportCSV handles GET /polls/{id}/export.csv
func (h *ResultsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	export, err := h.reporter.Export(r.Context(), r.PathValue("id"))
	if !h.ok(w, r, err) {
		return
	}

	var buf bytes.Buffer
	if err := results.WriteCSV(&buf, export); err != nil {
		slog.Error("failed to write CSV export", "poll_id", export.Poll.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export results")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="poll_%s_results.csv"`, export.Poll.ID))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// ok writes the error response for err and reports whether the caller may continue.
func (h *ResultsHandler) ok(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, results.ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	default:
		slog.Error("failed to load results", "path", r.URL.Path, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
	return false
}

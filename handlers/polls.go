// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/athishulleri01/poll-system/middleware"
	"github.com/athishulleri01/poll-system/models"
	"github.com/athishulleri01/poll-system/views"
	"github.com/athishulleri01/poll-system/voting"
)

type PollHandler struct {
	polls *voting.Service
	views *views.Renderer
}

func NewPollHandler(polls *voting.Service, renderer *views.Renderer) *PollHandler {
	return &PollHandler{polls: polls, views: renderer}
}

// ListPage handles GET /
func (h *PollHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	polls, err := h.polls.ListActivePolls(r.Context(), user)
	if err != nil {
		writeError(w, r, "", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.views.PollList(w, views.PollListPage{User: user, Polls: polls}); err != nil {
		slog.Error("failed to render poll list", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render page")
	}
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.polls.ListActivePolls(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, "", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// CreatePoll handles POST /admin/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req models.CreatePollRequest
	if !middleware.DecodeAndValidate(w, r, &req) {
		return
	}

	detail, err := h.polls.CreatePoll(r.Context(), user, req)
	if err != nil {
		writeError(w, r, "", err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, detail)
}

// ManagePolls handles GET /admin/polls
func (h *PollHandler) ManagePolls(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	polls, err := h.polls.ListManagedPolls(r.Context(), user)
	if err != nil {
		writeError(w, r, "", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// TogglePoll handles POST /admin/polls/{id}/toggle
func (h *PollHandler) TogglePoll(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	pollID := r.PathValue("id")

	poll, err := h.polls.TogglePollActive(r.Context(), user, pollID)
	if err != nil {
		writeError(w, r, pollID, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

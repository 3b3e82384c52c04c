// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/athishulleri01/poll-system/middleware"
	"github.com/athishulleri01/poll-system/models"
	"github.com/athishulleri01/poll-system/voting"
)

type VotingHandler struct {
	votes *voting.Service
}

func NewVotingHandler(votes *voting.Service) *VotingHandler {
	return &VotingHandler{votes: votes}
}

// GetPoll handles GET /polls/{id}
func (h *VotingHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	pollID := r.PathValue("id")

	detail, err := h.votes.PollDetail(r.Context(), user, pollID)
	if err != nil {
		writeError(w, r, pollID, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// CastVote handles POST /polls/{id}/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	pollID := r.PathValue("id")

	var req models.CastVoteRequest
	if !middleware.DecodeAndValidate(w, r, &req) {
		return
	}

	vote, err := h.votes.CastVote(r.Context(), user, pollID, req.OptionID)
	if err != nil {
		writeError(w, r, pollID, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Vote:    vote,
		Message: "Your vote has been recorded",
	})
}

// MyVotes handles GET /me/votes
func (h *VotingHandler) MyVotes(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	votes, err := h.votes.MyVotes(r.Context(), user)
	if err != nil {
		writeError(w, r, "", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, votes)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON, validated with go-playground/validator tags:

  - RegisterRequest, LoginRequest: username, password
  - CreatePollRequest: question, expires_at, is_active, options
  - CastVoteRequest: option_id

# Response Types

  - SessionResponse: token, expires_at, user
  - PollSummary: poll with total_votes and the caller's has_voted flag
  - PollDetail: poll, options, has_voted, time_remaining
  - CastVoteResponse: vote, message
  - ErrorResponse: error, message

# Domain Types

  - User: account with staff flag
  - Poll: question with activity and expiry state
  - Option: candidate answer belonging to one poll
  - Vote: one user's choice within a poll, unique per (user, poll)
  - UserVote, VoteRecord, OptionCount: read models for listings and tallies

Poll carries the derived state used by every caller:

	poll.IsExpired(now)
	poll.IsAvailableForVoting(now)
	poll.TimeRemaining(now) // nil when no expiry or already elapsed
*/
package models

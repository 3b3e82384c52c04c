// Package voting records votes and manages the poll lifecycle.
//
// Every vote precondition is checked in a fixed order: the poll exists and
// is active, it has not expired, the user has not voted, and the option
// belongs to the poll. The store's UNIQUE (user, poll) constraint remains
// the final arbiter when two requests race past the checks.
package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/athishulleri01/poll-system/auth"
	"github.com/athishulleri01/poll-system/db"
	"github.com/athishulleri01/poll-system/metrics"
	"github.com/athishulleri01/poll-system/models"
)

// MinOptions is the fewest non-blank options a poll may be created with.
const MinOptions = 2

// Store is the subset of *db.Store the service needs.
type Store interface {
	GetPoll(ctx context.Context, id string) (models.Poll, error)
	ListPolls(ctx context.Context, activeOnly bool) ([]models.PollSummary, error)
	CreatePoll(ctx context.Context, poll models.Poll, optionTexts []string) (models.Poll, []models.Option, error)
	TogglePollActive(ctx context.Context, id string) (models.Poll, error)
	ListOptions(ctx context.Context, pollID string) ([]models.Option, error)
	GetOption(ctx context.Context, pollID, optionID string) (models.Option, error)
	InsertVote(ctx context.Context, vote models.Vote) (models.Vote, error)
	HasVoted(ctx context.Context, userID, pollID string) (bool, error)
	VotedPollIDs(ctx context.Context, userID string) (map[string]bool, error)
	GetUserVote(ctx context.Context, userID, pollID string) (models.UserVote, error)
	ListUserVotes(ctx context.Context, userID string) ([]models.UserVote, error)
}

// Authorizer is satisfied by *auth.Authorizer.
type Authorizer interface {
	Can(user models.User, object, action string) (bool, error)
}

type Service struct {
	store Store
	authz Authorizer
	now   func() time.Time
}

func NewService(store Store, authz Authorizer) *Service {
	return &Service{store: store, authz: authz, now: time.Now}
}

// CastVote records the user's single vote on a poll.
func (s *Service) CastVote(ctx context.Context, user models.User, pollID, optionID string) (models.Vote, error) {
	if err := s.require(user, auth.ObjectVote, auth.ActionCast); err != nil {
		return models.Vote{}, err
	}

	poll, err := s.openPoll(ctx, pollID)
	if err != nil {
		return models.Vote{}, s.rejected(err)
	}

	voted, err := s.store.HasVoted(ctx, user.ID, poll.ID)
	if err != nil {
		return models.Vote{}, err
	}
	if voted {
		return models.Vote{}, s.rejected(ErrAlreadyVoted)
	}

	if _, err := s.store.GetOption(ctx, poll.ID, optionID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.Vote{}, s.rejected(ErrInvalidOption)
		}
		return models.Vote{}, err
	}

	vote, err := s.store.InsertVote(ctx, models.Vote{
		UserID:   user.ID,
		PollID:   poll.ID,
		OptionID: optionID,
		VotedAt:  s.now().UTC(),
	})
	switch {
	case errors.Is(err, db.ErrDuplicateVote):
		slog.Warn("duplicate vote rejected by store", "poll_id", poll.ID, "user_id", user.ID)
		return models.Vote{}, s.rejected(ErrIntegrityConflict)
	case errors.Is(err, db.ErrOptionMismatch):
		return models.Vote{}, s.rejected(ErrInvalidOption)
	case err != nil:
		return models.Vote{}, err
	}

	metrics.VotesCast.Inc()
	slog.Info("vote recorded", "poll_id", poll.ID, "option_id", optionID, "user_id", user.ID)

	return vote, nil
}

// openPoll returns the poll if it exists, is active and has not expired.
func (s *Service) openPoll(ctx context.Context, pollID string) (models.Poll, error) {
	poll, err := s.store.GetPoll(ctx, pollID)
	if errors.Is(err, db.ErrNotFound) {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, err
	}

	if !poll.IsActive {
		return models.Poll{}, ErrNotFound
	}
	if poll.IsExpired(s.now()) {
		return models.Poll{}, ErrExpired
	}

	return poll, nil
}

func (s *Service) rejected(err error) error {
	var reason string
	switch {
	case errors.Is(err, ErrNotFound):
		reason = "not_found"
	case errors.Is(err, ErrExpired):
		reason = "expired"
	case errors.Is(err, ErrIntegrityConflict):
		reason = "integrity_conflict"
	case errors.Is(err, ErrAlreadyVoted):
		reason = "already_voted"
	case errors.Is(err, ErrInvalidOption):
		reason = "invalid_option"
	default:
		return err
	}
	metrics.VotesRejected.WithLabelValues(reason).Inc()
	return err
}

// PollDetail returns a votable poll with its options and whether the
// user has voted. Inactive polls are ErrNotFound, expired ones ErrExpired.
func (s *Service) PollDetail(ctx context.Context, user models.User, pollID string) (models.PollDetail, error) {
	poll, err := s.openPoll(ctx, pollID)
	if err != nil {
		return models.PollDetail{}, err
	}

	options, err := s.store.ListOptions(ctx, poll.ID)
	if err != nil {
		return models.PollDetail{}, err
	}

	voted, err := s.store.HasVoted(ctx, user.ID, poll.ID)
	if err != nil {
		return models.PollDetail{}, err
	}

	return models.PollDetail{
		Poll:          poll,
		Options:       options,
		HasVoted:      voted,
		TimeRemaining: poll.TimeRemaining(s.now()),
	}, nil
}

// ListActivePolls returns active polls newest-first. When user is non-nil
// each poll carries whether that user has voted on it.
func (s *Service) ListActivePolls(ctx context.Context, user *models.User) ([]models.PollSummary, error) {
	polls, err := s.store.ListPolls(ctx, true)
	if err != nil {
		return nil, err
	}

	var voted map[string]bool
	if user != nil {
		voted, err = s.store.VotedPollIDs(ctx, user.ID)
		if err != nil {
			return nil, err
		}
	}

	now := s.now()
	for i := range polls {
		polls[i].HasVoted = voted[polls[i].ID]
		polls[i].TimeRemaining = polls[i].Poll.TimeRemaining(now)
	}

	return polls, nil
}

// MyVotes returns the user's votes, most recent first.
func (s *Service) MyVotes(ctx context.Context, user models.User) ([]models.UserVote, error) {
	return s.store.ListUserVotes(ctx, user.ID)
}

// UserVote returns the user's vote on the poll, or nil if there is none.
func (s *Service) UserVote(ctx context.Context, user models.User, pollID string) (*models.UserVote, error) {
	vote, err := s.store.GetUserVote(ctx, user.ID, pollID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// Poll lifecycle

// CreatePoll creates a poll and its options for a staff user. Option texts
// are trimmed and blanks dropped; fewer than MinOptions remaining is
// ErrInvalidInput and nothing is stored.
func (s *Service) CreatePoll(ctx context.Context, actor models.User, req models.CreatePollRequest) (models.PollDetail, error) {
	if err := s.require(actor, auth.ObjectPoll, auth.ActionCreate); err != nil {
		return models.PollDetail{}, err
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return models.PollDetail{}, fmt.Errorf("%w: question is required", ErrInvalidInput)
	}

	texts := make([]string, 0, len(req.Options))
	for _, text := range req.Options {
		if text = strings.TrimSpace(text); text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) < MinOptions {
		return models.PollDetail{}, fmt.Errorf("%w: please provide at least %d options", ErrInvalidInput, MinOptions)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		t := req.ExpiresAt.UTC()
		expiresAt = &t
	}

	poll, options, err := s.store.CreatePoll(ctx, models.Poll{
		Question:  question,
		CreatedBy: actor.ID,
		CreatedAt: s.now().UTC(),
		ExpiresAt: expiresAt,
		IsActive:  active,
	}, texts)
	if err != nil {
		return models.PollDetail{}, err
	}

	metrics.PollsCreated.Inc()
	slog.Info("poll created", "poll_id", poll.ID, "created_by", actor.Username, "options", len(options))

	return models.PollDetail{
		Poll:          poll,
		Options:       options,
		TimeRemaining: poll.TimeRemaining(s.now()),
	}, nil
}

// TogglePollActive flips the poll's is_active flag. Two calls restore the
// original state.
func (s *Service) TogglePollActive(ctx context.Context, actor models.User, pollID string) (models.Poll, error) {
	if err := s.require(actor, auth.ObjectPoll, auth.ActionToggle); err != nil {
		return models.Poll{}, err
	}

	poll, err := s.store.TogglePollActive(ctx, pollID)
	if errors.Is(err, db.ErrNotFound) {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, err
	}

	state := "deactivated"
	if poll.IsActive {
		state = "activated"
	}
	metrics.PollToggles.WithLabelValues(state).Inc()
	slog.Info("poll status changed", "poll_id", poll.ID, "state", state, "by", actor.Username)

	return poll, nil
}

// ListManagedPolls returns every poll, active or not, newest-first.
func (s *Service) ListManagedPolls(ctx context.Context, actor models.User) ([]models.PollSummary, error) {
	if err := s.require(actor, auth.ObjectPoll, auth.ActionManage); err != nil {
		return nil, err
	}

	polls, err := s.store.ListPolls(ctx, false)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range polls {
		polls[i].TimeRemaining = polls[i].Poll.TimeRemaining(now)
	}

	return polls, nil
}

func (s *Service) require(user models.User, object, action string) error {
	ok, err := s.authz.Can(user, object, action)
	if err != nil {
		return err
	}
	if !ok {
		slog.Warn("permission denied", "user", user.Username, "object", object, "action", action)
		return ErrForbidden
	}
	return nil
}

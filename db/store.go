// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/athishulleri01/poll-system/models"
)

// Store is the repository over users, polls, options and votes.
// Tallies are always computed from vote rows; nothing is cached.
type Store struct {
	db *sqlx.DB
}

func NewStore(conn *sqlx.DB) *Store {
	return &Store{db: conn}
}

// DB returns the underlying connection.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

const pollColumns = `p.id, p.question, p.created_by, p.created_at, p.expires_at, p.is_active`

// Users

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string, isStaff bool) (models.User, error) {
	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		IsStaff:      isStaff,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO app_user (id, username, password_hash, is_staff, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), user.ID, user.Username, user.PasswordHash, user.IsStaff, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (models.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.getUser(ctx, "username", username)
}

func (s *Store) getUser(ctx context.Context, column, value string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, s.db.Rebind(`
		SELECT id, username, password_hash, is_staff, created_at
		FROM app_user
		WHERE `+column+` = ?
	`), value)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}

// EnsureStaffUser creates a staff account, or promotes an existing
// account with the same username. The password of an existing account
// is left untouched.
func (s *Store) EnsureStaffUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return s.CreateUser(ctx, username, passwordHash, true)
	}
	if err != nil {
		return models.User{}, err
	}

	if !user.IsStaff {
		_, err = s.db.ExecContext(ctx, s.db.Rebind(`UPDATE app_user SET is_staff = ? WHERE id = ?`), true, user.ID)
		if err != nil {
			return models.User{}, fmt.Errorf("failed to promote user: %w", err)
		}
		user.IsStaff = true
	}

	return user, nil
}

// Polls

// CreatePoll inserts the poll and its options in one transaction.
func (s *Store) CreatePoll(ctx context.Context, poll models.Poll, optionTexts []string) (models.Poll, []models.Option, error) {
	poll.ID = uuid.NewString()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO poll (id, question, created_by, created_at, expires_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`), poll.ID, poll.Question, poll.CreatedBy, poll.CreatedAt, poll.ExpiresAt, poll.IsActive)
	if err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to insert poll: %w", err)
	}

	options := make([]models.Option, 0, len(optionTexts))
	for i, text := range optionTexts {
		opt := models.Option{
			ID:       uuid.NewString(),
			PollID:   poll.ID,
			Text:     text,
			Position: i,
		}
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO option (id, poll_id, text, position)
			VALUES (?, ?, ?, ?)
		`), opt.ID, opt.PollID, opt.Text, opt.Position)
		if err != nil {
			return models.Poll{}, nil, fmt.Errorf("failed to insert option: %w", err)
		}
		options = append(options, opt)
	}

	if err := tx.Commit(); err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return poll, options, nil
}

func (s *Store) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	return getPoll(ctx, s.db, id)
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

func getPoll(ctx context.Context, q queryer, id string) (models.Poll, error) {
	var poll models.Poll
	err := sqlx.GetContext(ctx, q, &poll, q.Rebind(`
		SELECT `+pollColumns+`
		FROM poll p
		WHERE p.id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}

	return poll, nil
}

// ListPolls returns polls newest-first with their live vote totals.
func (s *Store) ListPolls(ctx context.Context, activeOnly bool) ([]models.PollSummary, error) {
	query := `
		SELECT ` + pollColumns + `,
		       (SELECT COUNT(*) FROM vote v WHERE v.poll_id = p.id) AS total_votes
		FROM poll p`
	args := []any{}
	if activeOnly {
		query += ` WHERE p.is_active = ?`
		args = append(args, true)
	}
	query += ` ORDER BY p.created_at DESC, p.id`

	polls := []models.PollSummary{}
	if err := s.db.SelectContext(ctx, &polls, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}

	return polls, nil
}

// TogglePollActive flips is_active in a single statement and returns
// the updated poll.
func (s *Store) TogglePollActive(ctx context.Context, id string) (models.Poll, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE poll SET is_active = NOT is_active WHERE id = ?`), id)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to toggle poll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to toggle poll: %w", err)
	}
	if n == 0 {
		return models.Poll{}, ErrNotFound
	}

	poll, err := getPoll(ctx, tx, id)
	if err != nil {
		return models.Poll{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Poll{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return poll, nil
}

// Options

func (s *Store) ListOptions(ctx context.Context, pollID string) ([]models.Option, error) {
	options := []models.Option{}
	err := s.db.SelectContext(ctx, &options, s.db.Rebind(`
		SELECT id, poll_id, text, position
		FROM option
		WHERE poll_id = ?
		ORDER BY position
	`), pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}

	return options, nil
}

// GetOption returns ErrNotFound unless the option exists within pollID.
func (s *Store) GetOption(ctx context.Context, pollID, optionID string) (models.Option, error) {
	var opt models.Option
	err := s.db.GetContext(ctx, &opt, s.db.Rebind(`
		SELECT id, poll_id, text, position
		FROM option
		WHERE id = ? AND poll_id = ?
	`), optionID, pollID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Option{}, ErrNotFound
	}
	if err != nil {
		return models.Option{}, fmt.Errorf("failed to query option: %w", err)
	}

	return opt, nil
}

// Votes

// InsertVote relies on UNIQUE (user_id, poll_id) to reject a second
// vote, including one that raced past an earlier HasVoted check.
func (s *Store) InsertVote(ctx context.Context, vote models.Vote) (models.Vote, error) {
	vote.ID = uuid.NewString()

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO vote (id, user_id, poll_id, option_id, voted_at)
		VALUES (?, ?, ?, ?, ?)
	`), vote.ID, vote.UserID, vote.PollID, vote.OptionID, vote.VotedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Vote{}, ErrDuplicateVote
		}
		if isForeignKeyViolation(err) {
			return models.Vote{}, ErrOptionMismatch
		}
		return models.Vote{}, fmt.Errorf("failed to insert vote: %w", err)
	}

	return vote, nil
}

func (s *Store) HasVoted(ctx context.Context, userID, pollID string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, s.db.Rebind(`
		SELECT EXISTS(
			SELECT 1 FROM vote
			WHERE user_id = ? AND poll_id = ?
		)
	`), userID, pollID)
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}

	return exists, nil
}

// VotedPollIDs returns the set of polls the user has voted on.
func (s *Store) VotedPollIDs(ctx context.Context, userID string) (map[string]bool, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids, s.db.Rebind(`
		SELECT poll_id FROM vote WHERE user_id = ?
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query voted polls: %w", err)
	}

	voted := make(map[string]bool, len(ids))
	for _, id := range ids {
		voted[id] = true
	}

	return voted, nil
}

const userVoteQuery = `
		SELECT v.id, v.user_id, v.poll_id, v.option_id, v.voted_at,
		       p.question, o.text AS option_text
		FROM vote v
		JOIN poll p ON p.id = v.poll_id
		JOIN option o ON o.id = v.option_id
		WHERE v.user_id = ?`

func (s *Store) GetUserVote(ctx context.Context, userID, pollID string) (models.UserVote, error) {
	var vote models.UserVote
	err := s.db.GetContext(ctx, &vote, s.db.Rebind(userVoteQuery+` AND v.poll_id = ?`), userID, pollID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserVote{}, ErrNotFound
	}
	if err != nil {
		return models.UserVote{}, fmt.Errorf("failed to query vote: %w", err)
	}

	return vote, nil
}

// ListUserVotes returns the user's votes, most recent first.
func (s *Store) ListUserVotes(ctx context.Context, userID string) ([]models.UserVote, error) {
	votes := []models.UserVote{}
	err := s.db.SelectContext(ctx, &votes, s.db.Rebind(userVoteQuery+` ORDER BY v.voted_at DESC, v.id`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}

	return votes, nil
}

// CountVotes returns live per-option counts in option creation order.
func (s *Store) CountVotes(ctx context.Context, pollID string) ([]models.OptionCount, error) {
	counts := []models.OptionCount{}
	err := s.db.SelectContext(ctx, &counts, s.db.Rebind(`
		SELECT o.id AS option_id, o.text, COUNT(v.id) AS votes
		FROM option o
		LEFT JOIN vote v ON v.option_id = o.id
		WHERE o.poll_id = ?
		GROUP BY o.id, o.text, o.position
		ORDER BY o.position
	`), pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	return counts, nil
}

// ListVoteRecords returns every vote on the poll, most recent first.
func (s *Store) ListVoteRecords(ctx context.Context, pollID string) ([]models.VoteRecord, error) {
	records := []models.VoteRecord{}
	err := s.db.SelectContext(ctx, &records, s.db.Rebind(`
		SELECT u.username, o.text AS option_text, v.voted_at
		FROM vote v
		JOIN app_user u ON u.id = v.user_id
		JOIN option o ON o.id = v.option_id
		WHERE v.poll_id = ?
		ORDER BY v.voted_at DESC, v.id
	`), pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote records: %w", err)
	}

	return records, nil
}

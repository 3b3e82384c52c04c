package models

import "time"

// Session cookie name shared by handlers and middleware.
const SessionCookie = "session"

// Request types

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Options are trimmed and blank entries dropped before the
// two-option minimum is checked.
type CreatePollRequest struct {
	Question  string     `json:"question" validate:"required,max=200"`
	ExpiresAt *time.Time `json:"expires_at"`
	IsActive  *bool      `json:"is_active"`
	Options   []string   `json:"options" validate:"dive,max=100"`
}

type CastVoteRequest struct {
	OptionID string `json:"option_id" validate:"required,uuid"`
}

// Response types

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

type PollSummary struct {
	Poll
	TotalVotes    int            `json:"total_votes" db:"total_votes"`
	HasVoted      bool           `json:"has_voted" db:"-"`
	TimeRemaining *TimeRemaining `json:"time_remaining,omitempty" db:"-"`
}

type PollDetail struct {
	Poll          Poll           `json:"poll"`
	Options       []Option       `json:"options"`
	HasVoted      bool           `json:"has_voted"`
	TimeRemaining *TimeRemaining `json:"time_remaining,omitempty"`
}

type CastVoteResponse struct {
	Vote    Vote   `json:"vote"`
	Message string `json:"message"`
}

// Domain types

type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never expose in JSON
	IsStaff      bool      `json:"is_staff" db:"is_staff"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Poll struct {
	ID        string     `json:"id" db:"id"`
	Question  string     `json:"question" db:"question"`
	CreatedBy string     `json:"created_by" db:"created_by"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	IsActive  bool       `json:"is_active" db:"is_active"`
}

// IsExpired reports whether the poll has an expiry that lies before now.
func (p Poll) IsExpired(now time.Time) bool {
	if p.ExpiresAt == nil {
		return false
	}
	return now.After(*p.ExpiresAt)
}

func (p Poll) IsAvailableForVoting(now time.Time) bool {
	return p.IsActive && !p.IsExpired(now)
}

// TimeRemaining returns nil when the poll never expires or already has.
func (p Poll) TimeRemaining(now time.Time) *TimeRemaining {
	if p.ExpiresAt == nil {
		return nil
	}
	d := p.ExpiresAt.Sub(now)
	if d <= 0 {
		return nil
	}
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	return &TimeRemaining{
		Days:    days,
		Hours:   hours,
		Minutes: int(d / time.Minute),
	}
}

type TimeRemaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type Option struct {
	ID       string `json:"id" db:"id"`
	PollID   string `json:"poll_id" db:"poll_id"`
	Text     string `json:"text" db:"text"`
	Position int    `json:"-" db:"position"`
}

type Vote struct {
	ID       string    `json:"id" db:"id"`
	UserID   string    `json:"user_id" db:"user_id"`
	PollID   string    `json:"poll_id" db:"poll_id"`
	OptionID string    `json:"option_id" db:"option_id"`
	VotedAt  time.Time `json:"voted_at" db:"voted_at"`
}

// UserVote is a vote joined with the poll question and option text.
type UserVote struct {
	Vote
	Question   string `json:"question" db:"question"`
	OptionText string `json:"option_text" db:"option_text"`
}

// VoteRecord is one row of the detailed export.
type VoteRecord struct {
	Username   string    `json:"username" db:"username"`
	OptionText string    `json:"option" db:"option_text"`
	VotedAt    time.Time `json:"voted_at" db:"voted_at"`
}

// OptionCount is the live number of votes for one option.
type OptionCount struct {
	OptionID string `db:"option_id"`
	Text     string `db:"text"`
	Votes    int    `db:"votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Package results computes live vote tallies and their export formats.
package results

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/athishulleri01/poll-system/db"
	"github.com/athishulleri01/poll-system/models"
)

var ErrPollNotFound = errors.New("poll not found")

// OptionTally is one option's share of the vote.
type OptionTally struct {
	OptionID   string  `json:"-"`
	Text       string  `json:"text"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

// Tally is the aggregate view of a poll, without vote-level rows.
type Tally struct {
	Question   string        `json:"question"`
	TotalVotes int           `json:"total_votes"`
	Options    []OptionTally `json:"options"`
}

// Export is a tally plus every individual vote, most recent first.
type Export struct {
	Poll      models.Poll
	CreatedBy string
	Tally     Tally
	Votes     []models.VoteRecord
}

// ComputeTally turns per-option counts into percentages rounded to one
// decimal place. With no votes every percentage is 0.
func ComputeTally(question string, counts []models.OptionCount) Tally {
	total := 0
	for _, c := range counts {
		total += c.Votes
	}

	options := make([]OptionTally, len(counts))
	for i, c := range counts {
		options[i] = OptionTally{
			OptionID:   c.OptionID,
			Text:       c.Text,
			Votes:      c.Votes,
			Percentage: Percentage(c.Votes, total),
		}
	}

	return Tally{
		Question:   question,
		TotalVotes: total,
		Options:    options,
	}
}

// Percentage returns votes/total*100 rounded to one decimal, or 0 when
// total is 0.
func Percentage(votes, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(votes)/float64(total)*1000) / 10
}

// Store is the subset of *db.Store the reporter reads from.
type Store interface {
	GetPoll(ctx context.Context, id string) (models.Poll, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	CountVotes(ctx context.Context, pollID string) ([]models.OptionCount, error)
	ListVoteRecords(ctx context.Context, pollID string) ([]models.VoteRecord, error)
}

// Reporter reads tallies straight from vote rows on every call.
type Reporter struct {
	store Store
}

func NewReporter(store Store) *Reporter {
	return &Reporter{store: store}
}

// Tally returns the poll and its live tally. Results are viewable for
// inactive and expired polls too.
func (r *Reporter) Tally(ctx context.Context, pollID string) (models.Poll, Tally, error) {
	poll, err := r.store.GetPoll(ctx, pollID)
	if errors.Is(err, db.ErrNotFound) {
		return models.Poll{}, Tally{}, ErrPollNotFound
	}
	if err != nil {
		return models.Poll{}, Tally{}, err
	}

	counts, err := r.store.CountVotes(ctx, poll.ID)
	if err != nil {
		return models.Poll{}, Tally{}, err
	}

	return poll, ComputeTally(poll.Question, counts), nil
}

// Export returns the tally together with the creator and vote records.
func (r *Reporter) Export(ctx context.Context, pollID string) (Export, error) {
	poll, tally, err := r.Tally(ctx, pollID)
	if err != nil {
		return Export{}, err
	}

	creator, err := r.store.GetUserByID(ctx, poll.CreatedBy)
	if err != nil {
		return Export{}, err
	}

	votes, err := r.store.ListVoteRecords(ctx, poll.ID)
	if err != nil {
		return Export{}, err
	}

	return Export{
		Poll:      poll,
		CreatedBy: creator.Username,
		Tally:     tally,
		Votes:     votes,
	}, nil
}

// TimestampLayout is the export's date format.
const TimestampLayout = time.DateTime

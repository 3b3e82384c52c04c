package results

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/athishulleri01/poll-system/testutil"
)

func TestReporter(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	reporter := NewReporter(store)

	staff := testutil.CreateTestUser(t, store, "admin", true)
	poll, options := testutil.CreateTestPoll(t, store, staff, testutil.PollSpec{
		Question: "Favorite color?",
		Options:  []string{"Red", "Blue", "Green"},
		Inactive: true,
	})

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	alice := testutil.CreateTestUser(t, store, "alice", false)
	bob := testutil.CreateTestUser(t, store, "bob", false)
	carol := testutil.CreateTestUser(t, store, "carol", false)
	testutil.CastTestVote(t, store, alice, options[0], base)
	testutil.CastTestVote(t, store, bob, options[1], base.Add(time.Minute))
	testutil.CastTestVote(t, store, carol, options[0], base.Add(2*time.Minute))

	t.Run("tally of an inactive poll", func(t *testing.T) {
		got, tally, err := reporter.Tally(ctx, poll.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.ID != poll.ID || tally.TotalVotes != 3 {
			t.Fatalf("Unexpected tally %+v for poll %s", tally, got.ID)
		}

		want := []struct {
			text  string
			votes int
			pct   float64
		}{
			{"Red", 2, 66.7},
			{"Blue", 1, 33.3},
			{"Green", 0, 0},
		}
		for i, w := range want {
			o := tally.Options[i]
			if o.Text != w.text || o.Votes != w.votes || o.Percentage != w.pct {
				t.Errorf("Option %d: expected %s %d %.1f, got %+v", i, w.text, w.votes, w.pct, o)
			}
		}
	})

	t.Run("export", func(t *testing.T) {
		export, err := reporter.Export(ctx, poll.ID)
		if err != nil {
			t.Fatal(err)
		}
		if export.CreatedBy != "admin" {
			t.Errorf("Expected creator admin, got %q", export.CreatedBy)
		}
		if len(export.Votes) != 3 {
			t.Fatalf("Expected 3 vote records, got %d", len(export.Votes))
		}
		if export.Votes[0].Username != "carol" || export.Votes[2].Username != "alice" {
			t.Errorf("Expected most recent first, got %+v", export.Votes)
		}
	})

	t.Run("unknown poll", func(t *testing.T) {
		if _, _, err := reporter.Tally(ctx, "missing"); !errors.Is(err, ErrPollNotFound) {
			t.Errorf("Expected ErrPollNotFound, got %v", err)
		}
		if _, err := reporter.Export(ctx, "missing"); !errors.Is(err, ErrPollNotFound) {
			t.Errorf("Expected ErrPollNotFound, got %v", err)
		}
	})
}

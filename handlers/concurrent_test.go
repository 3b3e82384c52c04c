// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/athishulleri01/poll-system/models"
	"github.com/athishulleri01/poll-system/testutil"
)

// TestConcurrentVotesSameUser verifies that when one user fires many votes
// at the same poll simultaneously, exactly one is recorded and every other
// attempt gets a deterministic 409.
func TestConcurrentVotesSameUser(t *testing.T) {
	env := newTestEnv(t)
	voter := testutil.CreateTestUser(t, env.store, "racer", false)
	poll, options := testutil.CreateTestPoll(t, env.store, env.staff, testutil.PollSpec{})

	numAttempts := 10
	var created, conflicts, other atomic.Int32
	var wg sync.WaitGroup

	start := make(chan struct{})
	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(attempt int) {
			defer wg.Done()

			option := options[attempt%len(options)]
			req := newRequest(t, "POST", "/polls/"+poll.ID+"/votes", models.CastVoteRequest{OptionID: option.ID}, &voter)
			req.SetPathValue("id", poll.ID)
			w := httptest.NewRecorder()

			<-start
			env.voting.CastVote(w, req)

			switch w.Code {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusConflict:
				conflicts.Add(1)
			default:
				other.Add(1)
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}(i)
	}
	close(start)
	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("Expected exactly 1 successful vote, got %d", created.Load())
	}
	if int(conflicts.Load()) != numAttempts-1 {
		t.Errorf("Expected %d conflicts, got %d", numAttempts-1, conflicts.Load())
	}

	if n := testutil.CountVotes(t, env.store.DB(), poll.ID); n != 1 {
		t.Errorf("Expected 1 vote in database, got %d", n)
	}
}

// TestConcurrentVotesManyUsers verifies that simultaneous votes from
// different users are all recorded.
func TestConcurrentVotesManyUsers(t *testing.T) {
	env := newTestEnv(t)
	poll, options := testutil.CreateTestPoll(t, env.store, env.staff, testutil.PollSpec{
		Options: []string{"A", "B", "C"},
	})

	numVoters := 10
	voters := make([]models.User, numVoters)
	for i := range voters {
		voters[i] = testutil.CreateTestUser(t, env.store, fmt.Sprintf("voter%d", i), false)
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			option := options[idx%len(options)]
			req := newRequest(t, "POST", "/polls/"+poll.ID+"/votes", models.CastVoteRequest{OptionID: option.ID}, &voters[idx])
			req.SetPathValue("id", poll.ID)
			w := httptest.NewRecorder()

			env.voting.CastVote(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			} else {
				t.Errorf("Voter %d: unexpected status %d: %s", idx, w.Code, w.Body.String())
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	if n := testutil.CountVotes(t, env.store.DB(), poll.ID); n != numVoters {
		t.Errorf("Expected %d votes in database, got %d", numVoters, n)
	}

	// No voter has more than one row
	var maxPerUser int
	err := env.store.DB().Get(&maxPerUser, env.store.DB().Rebind(`
		SELECT COALESCE(MAX(n), 0) FROM (
			SELECT COUNT(*) AS n FROM vote WHERE poll_id = ? GROUP BY user_id
		) per_user
	`), poll.ID)
	if err != nil {
		t.Fatalf("Failed to count votes per user: %v", err)
	}
	if maxPerUser != 1 {
		t.Errorf("Expected at most 1 vote per user, got %d", maxPerUser)
	}
}

// TestConcurrentToggle verifies that an even number of concurrent toggles
// leaves the poll in its original state.
func TestConcurrentToggle(t *testing.T) {
	env := newTestEnv(t)
	poll, _ := testutil.CreateTestPoll(t, env.store, env.staff, testutil.PollSpec{})

	numToggles := 6
	var wg sync.WaitGroup
	for i := 0; i < numToggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := newRequest(t, "POST", "/admin/polls/"+poll.ID+"/toggle", nil, &env.staff)
			req.SetPathValue("id", poll.ID)
			w := httptest.NewRecorder()
			env.polls.TogglePoll(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}()
	}
	wg.Wait()

	stored, err := env.store.GetPoll(t.Context(), poll.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.IsActive != poll.IsActive {
		t.Errorf("Expected is_active %v after %d toggles, got %v", poll.IsActive, numToggles, stored.IsActive)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/athishulleri01/poll-system/auth"
	"github.com/athishulleri01/poll-system/db"
	"github.com/athishulleri01/poll-system/middleware"
	"github.com/athishulleri01/poll-system/models"
	"github.com/athishulleri01/poll-system/results"
	"github.com/athishulleri01/poll-system/testutil"
	"github.com/athishulleri01/poll-system/views"
	"github.com/athishulleri01/poll-system/voting"
)

// testEnv wires the handlers to a fresh SQLite database.
type testEnv struct {
	store *db.Store

	polls   *PollHandler
	voting  *VotingHandler
	results *ResultsHandler

	staff models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := testutil.SetupTestStore(t)

	authz, err := auth.NewAuthorizer()
	if err != nil {
		t.Fatalf("Failed to create authorizer: %v", err)
	}
	renderer, err := views.New()
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}

	service := voting.NewService(store, authz)
	reporter := results.NewReporter(store)

	return &testEnv{
		store:   store,
		polls:   NewPollHandler(service, renderer),
		voting:  NewVotingHandler(service),
		results: NewResultsHandler(reporter, service, renderer),
		staff:   testutil.CreateTestUser(t, store, "admin", true),
	}
}

// newRequest builds a request, JSON-encoding body when it is not nil and
// attaching user to the context when it is not nil.
func newRequest(t *testing.T, method, path string, body interface{}, user *models.User) *http.Request {
	t.Helper()

	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewBufferString(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if user != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), *user))
	}
	return req
}

func countRows(t *testing.T, store *db.Store, table string) int {
	t.Helper()

	var n int
	if err := store.DB().Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("Failed to count %s rows: %v", table, err)
	}
	return n
}

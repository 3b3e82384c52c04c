// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/athishulleri01/poll-system/auth"
	"github.com/athishulleri01/poll-system/cliparse"
	"github.com/athishulleri01/poll-system/db"
	"github.com/athishulleri01/poll-system/models"
)

// TestPassword is the password of every user created by CreateTestUser.
const TestPassword = "password123"

// SetupTestDB creates a fresh SQLite database in a temp dir with the full schema.
// The database is closed when the test finishes.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore is SetupTestDB wrapped in a Store.
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()
	return db.NewStore(SetupTestDB(t))
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   "test.db",
		DatabaseType:  db.TypeSQLite,
		SessionSecret: "test-session-secret",
		SessionTTL:    time.Hour,
		VoteRateLimit: 1000,
	}
}

// CreateTestUser inserts a user whose password is TestPassword.
func CreateTestUser(t *testing.T, store *db.Store, username string, isStaff bool) models.User {
	t.Helper()

	// MinCost keeps tests fast; production hashes use auth.HashPassword.
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user, err := store.CreateUser(context.Background(), username, string(hash), isStaff)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// PollSpec describes a poll for CreateTestPoll. Zero values give an active
// poll without expiry.
type PollSpec struct {
	Question  string
	Options   []string
	Inactive  bool
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// CreateTestPoll inserts a poll owned by creator and returns it with its options.
func CreateTestPoll(t *testing.T, store *db.Store, creator models.User, spec PollSpec) (models.Poll, []models.Option) {
	t.Helper()

	if spec.Question == "" {
		spec.Question = "Test Poll"
	}
	if len(spec.Options) == 0 {
		spec.Options = []string{"Option A", "Option B"}
	}
	if spec.CreatedAt.IsZero() {
		spec.CreatedAt = time.Now().UTC()
	}

	poll, options, err := store.CreatePoll(context.Background(), models.Poll{
		Question:  spec.Question,
		CreatedBy: creator.ID,
		CreatedAt: spec.CreatedAt,
		ExpiresAt: spec.ExpiresAt,
		IsActive:  !spec.Inactive,
	}, spec.Options)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return poll, options
}

// CastTestVote inserts a vote directly, bypassing the voting service checks.
func CastTestVote(t *testing.T, store *db.Store, user models.User, option models.Option, votedAt time.Time) models.Vote {
	t.Helper()

	vote, err := store.InsertVote(context.Background(), models.Vote{
		UserID:   user.ID,
		PollID:   option.PollID,
		OptionID: option.ID,
		VotedAt:  votedAt.UTC(),
	})
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return vote
}

// CountVotes returns the number of vote rows for a poll.
func CountVotes(t *testing.T, conn *sqlx.DB, pollID string) int {
	t.Helper()

	var n int
	if err := conn.Get(&n, conn.Rebind(`SELECT COUNT(*) FROM vote WHERE poll_id = ?`), pollID); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// AuthHeaders returns an Authorization header carrying a session for user.
func AuthHeaders(t *testing.T, cfg cliparse.Config, user models.User) map[string]string {
	t.Helper()

	token, _, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL).Issue(user.ID, user.Username)
	if err != nil {
		t.Fatalf("Failed to issue session token: %v", err)
	}

	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

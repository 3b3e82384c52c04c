// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The statements are accepted by both PostgreSQL and SQLite.
func CreateSchema(conn *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

var schema = []string{
	// Users
	`CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    is_staff BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL
)`,

	// Polls
	`CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    created_by TEXT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL,
    expires_at TIMESTAMP,
    is_active BOOLEAN NOT NULL DEFAULT TRUE
)`,
	`CREATE INDEX IF NOT EXISTS idx_poll_active_created ON poll(is_active, created_at)`,

	// Options. UNIQUE (id, poll_id) is the target of vote's composite key.
	`CREATE TABLE IF NOT EXISTS option (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    position INTEGER NOT NULL,
    UNIQUE (id, poll_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_option_poll_id ON option(poll_id)`,

	// Votes: one per (user, poll), and the option must belong to the poll.
	`CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    option_id TEXT NOT NULL,
    voted_at TIMESTAMP NOT NULL,
    UNIQUE (user_id, poll_id),
    FOREIGN KEY (option_id, poll_id) REFERENCES option(id, poll_id) ON DELETE CASCADE
)`,
	`CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id)`,
	`CREATE INDEX IF NOT EXISTS idx_vote_option_id ON vote(option_id)`,
}

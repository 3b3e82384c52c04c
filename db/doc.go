// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the schema, the driver setup and the Store repository.

# Connecting

Open connects with lib/pq (DATABASE_TYPE=postgres) or modernc.org/sqlite
(sqlite) and pings before returning:

	conn, err := db.Open(ctx, db.TypeSQLite, "polls.db")

SQLite connections enable foreign keys, WAL, a busy timeout and immediate
write transactions. Queries are written with ? placeholders and passed
through Rebind, so the same SQL runs on both drivers.

# Schema Creation

CreateSchema is safe to call multiple times; every table and index uses
IF NOT EXISTS.

  - app_user: Accounts, is_staff grants poll management
  - poll: Question, creator, expiry and is_active
  - option: Options per poll, ordered by position
  - vote: One row per (user_id, poll_id)

# Relationships

	app_user 1──* poll
	poll     1──* option
	option   1──* vote
	app_user 1──* vote

All foreign keys use ON DELETE CASCADE. A vote references its option by
(option_id, poll_id), so a vote whose option belongs to a different poll
is rejected by the database.

# Errors

Constraint violations from either driver map to sentinels:

  - ErrDuplicateVote: second vote by the same user on a poll
  - ErrOptionMismatch: option missing or outside the poll
  - ErrUsernameTaken: duplicate username
  - ErrNotFound: no matching row
*/
package db

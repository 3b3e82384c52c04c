// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the poll server.

Staff users create polls with two or more options; signed-in users cast one
vote per poll, enforced by a UNIQUE (user_id, poll_id) constraint; results
are served live as HTML, JSON and CSV.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=polls.db SESSION_SECRET=... go run .

Or against PostgreSQL with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

Variables may also come from a .env file (-env-file, default ".env");
values already in the environment win.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - SESSION_SECRET (-session-secret): HMAC key for session tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SESSION_TTL: Session lifetime (default: 24h)
  - VOTE_RATE_LIMIT: Vote attempts per minute per IP (default: 30)
  - CORS_ORIGINS (-cors-origins): Comma-separated allowed origins
  - ADMIN_USERNAME, ADMIN_PASSWORD: Staff account ensured at startup

# Architecture

  - voting: Vote casting and poll lifecycle (create, toggle)
  - results: Live tallies and CSV export
  - db: Schema, driver setup and the Store repository
  - handlers: HTTP request handlers (accounts, polls, voting, results)
  - router: chi routes, rate limiting, CORS, metrics endpoint
  - middleware: Logging, sessions, JSON and validation helpers
  - views: Embedded HTML templates
  - auth: Passwords, session tokens, casbin authorization
  - metrics: Prometheus collectors
  - models: Request, response and domain types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

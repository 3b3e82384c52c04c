// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type (sqlite or postgres)
	-env-file        Optional dotenv file (default .env)
	-cors-origins    Comma-separated allowed origins
	-session-secret  Session signing secret

# Environment Variables

Flags fall back to environment variables, which may be loaded from the
dotenv file. Variables already set in the environment are never replaced
by the file.

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	SESSION_SECRET  → -session-secret
	CORS_ORIGINS    → -cors-origins
	SESSION_TTL     (default 24h)
	VOTE_RATE_LIMIT (default 30 per minute)
	ADMIN_USERNAME, ADMIN_PASSWORD

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL or SESSION_SECRET is missing
  - DATABASE_TYPE is not sqlite or postgres
  - PORT, SESSION_TTL or VOTE_RATE_LIMIT does not parse as a positive value
  - only one of ADMIN_USERNAME and ADMIN_PASSWORD is set
*/
package cliparse

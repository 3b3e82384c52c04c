// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported DATABASE_TYPE values.
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

func init() {
	sqlx.BindDriver(TypeSQLite, sqlx.QUESTION)
}

// Open connects to the database and verifies the connection.
// SQLite connections get foreign keys, WAL, a busy timeout and
// immediate transactions so concurrent writers wait instead of failing.
func Open(ctx context.Context, dbType, url string) (*sqlx.DB, error) {
	switch dbType {
	case TypePostgres:
	case TypeSQLite:
		url = sqliteDSN(url)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sqlx.Open(dbType, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func sqliteDSN(url string) string {
	url = strings.TrimPrefix(url, "sqlite://")
	if !strings.HasPrefix(url, "file:") {
		url = "file:" + url
	}

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}

	return url + sep + strings.Join([]string{
		"_pragma=foreign_keys(1)",
		"_pragma=busy_timeout(10000)",
		"_pragma=journal_mode(WAL)",
		"_txlock=immediate",
		"_time_format=sqlite",
	}, "&")
}

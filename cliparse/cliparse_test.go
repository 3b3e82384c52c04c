// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// noEnvFile points -env-file at a path that does not exist.
func noEnvFile(t *testing.T) string {
	return "-env-file=" + filepath.Join(t.TempDir(), "missing.env")
}

func clearEnv(t *testing.T) {
	for _, name := range []string{
		"PORT", "DATABASE_URL", "DATABASE_TYPE", "SESSION_SECRET", "SESSION_TTL",
		"VOTE_RATE_LIMIT", "CORS_ORIGINS", "ADMIN_USERNAME", "ADMIN_PASSWORD",
	} {
		t.Setenv(name, "")
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("VOTE_RATE_LIMIT", "5")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")

	cfg, err := ParseFlags([]string{noEnvFile(t)})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %q", cfg.DatabaseType)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("expected 2h session TTL, got %v", cfg.SessionTTL)
	}
	if cfg.VoteRateLimit != 5 {
		t.Errorf("expected vote rate limit 5, got %d", cfg.VoteRateLimit)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.example" {
		t.Errorf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "s")

	cfg, err := ParseFlags([]string{noEnvFile(t), "-d", "polls.db"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected default 24h TTL, got %v", cfg.SessionTTL)
	}
	if cfg.VoteRateLimit != 30 {
		t.Errorf("expected default rate limit 30, got %d", cfg.VoteRateLimit)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{noEnvFile(t), "-p", "8080", "-d", "file:test.db", "-session-secret", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("SESSION_SECRET")
	t.Setenv("PORT", "7000")

	envPath := filepath.Join(t.TempDir(), ".env")
	content := "DATABASE_URL=from-dotenv.db\nSESSION_SECRET=dotenv-secret\nPORT=1234\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("SESSION_SECRET")
	})

	cfg, err := ParseFlags([]string{"-env-file", envPath})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DatabaseURL != "from-dotenv.db" {
		t.Errorf("expected DATABASE_URL from .env, got %q", cfg.DatabaseURL)
	}
	if cfg.SessionSecret != "dotenv-secret" {
		t.Errorf("expected SESSION_SECRET from .env, got %q", cfg.SessionSecret)
	}
	// real environment wins over .env
	if cfg.Port != 7000 {
		t.Errorf("expected PORT 7000 from environment, got %d", cfg.Port)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing database url", map[string]string{"SESSION_SECRET": "s"}, nil},
		{"missing session secret", map[string]string{"DATABASE_URL": "x.db"}, nil},
		{"bad database type", map[string]string{"DATABASE_URL": "x", "SESSION_SECRET": "s", "DATABASE_TYPE": "mysql"}, nil},
		{"bad port", map[string]string{"DATABASE_URL": "x", "SESSION_SECRET": "s", "PORT": "abc"}, nil},
		{"bad ttl", map[string]string{"DATABASE_URL": "x", "SESSION_SECRET": "s", "SESSION_TTL": "soon"}, nil},
		{"bad rate limit", map[string]string{"DATABASE_URL": "x", "SESSION_SECRET": "s", "VOTE_RATE_LIMIT": "-1"}, nil},
		{"admin without password", map[string]string{"DATABASE_URL": "x", "SESSION_SECRET": "s", "ADMIN_USERNAME": "root"}, nil},
		{"unknown flag", map[string]string{"DATABASE_URL": "x", "SESSION_SECRET": "s"}, []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			args := append([]string{noEnvFile(t)}, tt.args...)
			if _, err := ParseFlags(args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

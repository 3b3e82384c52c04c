// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/athishulleri01/poll-system/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := hashPassword("correct horse battery", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashPassword() error = %v", err)
	}

	if hash == "correct horse battery" {
		t.Error("hash should not equal the plaintext password")
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("expected bcrypt hash, got %q", hash)
	}

	if err := CheckPassword(hash, "correct horse battery"); err != nil {
		t.Errorf("CheckPassword() with correct password error = %v", err)
	}
	if err := CheckPassword(hash, "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("CheckPassword() with wrong password = %v, want ErrInvalidCredentials", err)
	}
	if err := CheckPassword("not-a-hash", "anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("CheckPassword() with malformed hash = %v, want ErrInvalidCredentials", err)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)

	token, expiresAt, err := m.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}
	if d := time.Until(expiresAt); d < 59*time.Minute || d > time.Hour {
		t.Errorf("expiresAt %v not about one hour away", expiresAt)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "alice" {
		t.Errorf("Parse() claims = %+v", claims)
	}
}

func TestSessionParseRejects(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)
	token, _, err := m.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	expired := NewSessionManager("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name    string
		manager *SessionManager
		token   string
	}{
		{"wrong secret", NewSessionManager("other-secret", time.Hour), token},
		{"expired", m, expiredToken},
		{"garbage", m, "not.a.token"},
		{"empty", m, ""},
		{"tampered", m, token[:len(token)-2] + "xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.manager.Parse(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Parse() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestAuthorizer(t *testing.T) {
	a, err := NewAuthorizer()
	if err != nil {
		t.Fatalf("NewAuthorizer() error = %v", err)
	}

	staff := models.User{Username: "admin", IsStaff: true}
	member := models.User{Username: "bob"}

	tests := []struct {
		name   string
		user   models.User
		object string
		action string
		want   bool
	}{
		{"staff create", staff, ObjectPoll, ActionCreate, true},
		{"staff toggle", staff, ObjectPoll, ActionToggle, true},
		{"staff manage", staff, ObjectPoll, ActionManage, true},
		{"staff inherits cast", staff, ObjectVote, ActionCast, true},
		{"member create", member, ObjectPoll, ActionCreate, false},
		{"member toggle", member, ObjectPoll, ActionToggle, false},
		{"member manage", member, ObjectPoll, ActionManage, false},
		{"member cast", member, ObjectVote, ActionCast, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Can(tt.user, tt.object, tt.action)
			if err != nil {
				t.Fatalf("Can() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Can(%s, %s, %s) = %v, want %v", RoleOf(tt.user), tt.object, tt.action, got, tt.want)
			}
		})
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/athishulleri01/poll-system/auth"
	"github.com/athishulleri01/poll-system/models"
)

type fakeUsers map[string]models.User

func (f fakeUsers) GetUserByID(_ context.Context, id string) (models.User, error) {
	user, ok := f[id]
	if !ok {
		return models.User{}, errors.New("not found")
	}
	return user, nil
}

func TestAuthenticate(t *testing.T) {
	sessions := auth.NewSessionManager("test-secret", time.Hour)
	alice := models.User{ID: "u1", Username: "alice", IsStaff: true}
	authn := NewAuthenticator(sessions, fakeUsers{alice.ID: alice})

	token, _, err := sessions.Issue(alice.ID, alice.Username)
	if err != nil {
		t.Fatal(err)
	}
	ghostToken, _, err := sessions.Issue("u-deleted", "ghost")
	if err != nil {
		t.Fatal(err)
	}
	foreignToken, _, err := auth.NewSessionManager("other-secret", time.Hour).Issue(alice.ID, alice.Username)
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name       string
		setup      func(r *http.Request)
		expectUser bool
	}{
		{"no credentials", func(r *http.Request) {}, false},
		{"bearer token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, true},
		{"session cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: models.SessionCookie, Value: token}) }, true},
		{"non-bearer scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic "+token) }, false},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, false},
		{"token signed with another secret", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+foreignToken) }, false},
		{"user no longer exists", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+ghostToken) }, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUser models.User
			var gotOK bool
			handler := authn.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, gotOK = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/", nil)
			tc.setup(req)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("Expected request to pass through, got %d", w.Code)
			}
			if gotOK != tc.expectUser {
				t.Fatalf("Expected user present=%v, got %v", tc.expectUser, gotOK)
			}
			if tc.expectUser && (gotUser.ID != alice.ID || !gotUser.IsStaff) {
				t.Errorf("Expected alice from the store, got %+v", gotUser)
			}
		})
	}
}

func TestRequireUser(t *testing.T) {
	called := false
	handler := RequireUser(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/", nil))

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
		if called {
			t.Error("Expected next handler not to run")
		}
	})

	t.Run("signed in", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req = req.WithContext(WithUser(req.Context(), models.User{ID: "u1"}))
		w := httptest.NewRecorder()
		handler(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if !called {
			t.Error("Expected next handler to run")
		}
	})
}

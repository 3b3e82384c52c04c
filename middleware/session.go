// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/athishulleri01/poll-system/auth"
	"github.com/athishulleri01/poll-system/models"
)

type contextKey struct{}

var userKey = contextKey{}

// UserLookup is satisfied by *db.Store.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// Authenticator attaches the session's user to the request context.
type Authenticator struct {
	sessions *auth.SessionManager
	users    UserLookup
}

func NewAuthenticator(sessions *auth.SessionManager, users UserLookup) *Authenticator {
	return &Authenticator{sessions: sessions, users: users}
}

// Authenticate resolves the session token, if any. Requests without a
// valid session continue anonymously; RequireUser rejects them where needed.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := a.sessions.Parse(token)
		if err != nil {
			slog.Debug("ignoring invalid session", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		// Staff status is read fresh so revocations apply immediately.
		user, err := a.users.GetUserByID(r.Context(), claims.UserID)
		if err != nil {
			slog.Warn("session user not found", "user_id", claims.UserID, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r)
	}
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

// sessionToken reads a bearer token, falling back to the session cookie.
func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(models.SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

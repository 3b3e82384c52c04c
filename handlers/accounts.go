// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/athishulleri01/poll-system/auth"
	"github.com/athishulleri01/poll-system/db"
	"github.com/athishulleri01/poll-system/middleware"
	"github.com/athishulleri01/poll-system/models"
)

type AccountHandler struct {
	store    *db.Store
	sessions *auth.SessionManager
}

func NewAccountHandler(store *db.Store, sessions *auth.SessionManager) *AccountHandler {
	return &AccountHandler{store: store, sessions: sessions}
}

// Register handles POST /accounts/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !middleware.DecodeAndValidate(w, r, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user, err := h.store.CreateUser(r.Context(), req.Username, hash, false)
	if errors.Is(err, db.ErrUsernameTaken) {
		middleware.ErrorResponse(w, http.StatusConflict, "Username is already taken")
		return
	}
	if err != nil {
		slog.Error("failed to create user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)

	h.startSession(w, user, http.StatusCreated)
}

// Login handles POST /accounts/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !middleware.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		slog.Error("failed to load user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if err != nil || auth.CheckPassword(user.PasswordHash, req.Password) != nil {
		slog.Warn("login failed", "username", req.Username)
		middleware.ErrorResponse(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	slog.Info("user logged in", "user_id", user.ID)

	h.startSession(w, user, http.StatusOK)
}

// Logout handles POST /accounts/logout. Tokens are stateless, so this only
// clears the cookie.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     models.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) startSession(w http.ResponseWriter, user models.User, status int) {
	token, expiresAt, err := h.sessions.Issue(user.ID, user.Username)
	if err != nil {
		slog.Error("failed to issue session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     models.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.JSONResponse(w, status, models.SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

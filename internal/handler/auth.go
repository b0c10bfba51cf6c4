// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/oboard-go/internal/auth"
	"github.com/olegiv/oboard-go/internal/middleware"
	"github.com/olegiv/oboard-go/internal/model"
	"github.com/olegiv/oboard-go/internal/store"
)

// AuthHandler handles registration, login, logout, and session inspection.
type AuthHandler struct {
	queries *store.Queries
	sm      *scs.SessionManager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(db *sql.DB, sm *scs.SessionManager) *AuthHandler {
	return &AuthHandler{
		queries: store.New(db),
		sm:      sm,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/register.
// Registration does not log the new user in; the client follows up with a
// login request.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if msg := validateRegistration(req.Username, req.Email, req.Password); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("hashing password", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		IsAdmin:      false,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		// The UNIQUE constraints are the single arbiter of duplicates; no
		// pre-check, so concurrent registrations cannot slip past.
		if store.IsUniqueViolation(err) {
			writeJSONError(w, http.StatusBadRequest, "Username or email already exists")
			return
		}
		slog.Error("creating user", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Account created successfully",
		"user": model.PublicUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.queries.GetUserByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("looking up user", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		// Unknown user and wrong password are indistinguishable to the client
		writeJSONError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		writeJSONError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	// Transparently upgrade hashes made with older parameters
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(req.Password); err == nil {
			if err := h.queries.UpdateUserPasswordHash(r.Context(), user.ID, newHash); err != nil {
				slog.Warn("rehashing password", "user_id", user.ID, "error", err)
			}
		}
	}

	// Rotate the session token on privilege change to prevent fixation
	if err := h.sm.RenewToken(r.Context()); err != nil {
		slog.Error("renewing session token", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.sm.Put(r.Context(), middleware.SessionKeyUserID, user.ID)
	h.sm.Put(r.Context(), middleware.SessionKeyUsername, user.Username)
	h.sm.Put(r.Context(), middleware.SessionKeyIsAdmin, user.IsAdmin)

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Logged in successfully",
		"user": model.AuthenticatedUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			IsAdmin:  user.IsAdmin,
		},
	})
}

// Logout handles POST /api/logout. Destroying a session that does not
// exist is fine; logout is idempotent.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sm.Destroy(r.Context()); err != nil {
		slog.Error("destroying session", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

// Session handles GET /api/session. It reports the identity snapshot
// stored in the session and never touches the users table.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r)
	if ident == nil {
		writeJSON(w, http.StatusOK, map[string]any{"isLoggedIn": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"isLoggedIn": true,
		"user": model.SessionUser{
			ID:       ident.UserID,
			Username: ident.Username,
			IsAdmin:  ident.IsAdmin,
		},
	})
}

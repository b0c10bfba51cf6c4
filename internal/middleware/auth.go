// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyIdentity holds the Identity of the logged-in user, if any.
const ContextKeyIdentity ContextKey = "identity"

// Session keys for the identity snapshot written at login.
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUsername = "username"
	SessionKeyIsAdmin  = "is_admin"
)

// Identity is the snapshot of the user taken at login time and stored in the
// session. It is read back on every request without touching the users table,
// so a rename or privilege change only shows up after the next login.
type Identity struct {
	UserID   int64
	Username string
	IsAdmin  bool
}

// LoadIdentity creates middleware that reads the identity snapshot from the
// session into the request context. Requests without a session pass through
// with no identity set.
func LoadIdentity(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), SessionKeyUserID)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			ident := Identity{
				UserID:   userID,
				Username: sm.GetString(r.Context(), SessionKeyUsername),
				IsAdmin:  sm.GetBool(r.Context(), SessionKeyIsAdmin),
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the current identity from the request context.
// Returns nil for anonymous requests.
func GetIdentity(r *http.Request) *Identity {
	ident, ok := r.Context().Value(ContextKeyIdentity).(Identity)
	if !ok {
		return nil
	}
	return &ident
}

// RequireUser creates middleware that rejects anonymous requests with a
// 401 JSON error.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetIdentity(r) == nil {
				writeJSONError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin creates middleware that rejects non-admin requests with a
// 403 JSON error. Anonymous requests get 403 as well: the admin gate does not
// distinguish "not logged in" from "logged in without the role".
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := GetIdentity(r)
			if ident == nil || !ident.IsAdmin {
				slog.Warn("admin access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", userIDForLog(ident),
					"remote_addr", r.RemoteAddr,
				)
				writeJSONError(w, http.StatusForbidden, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func userIDForLog(ident *Identity) int64 {
	if ident == nil {
		return 0
	}
	return ident.UserID
}

// writeJSONError writes an error response in the API's standard shape.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

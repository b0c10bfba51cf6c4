// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/oboard-go/internal/middleware"
	"github.com/olegiv/oboard-go/internal/model"
	"github.com/olegiv/oboard-go/internal/store"
)

// AdminHandler handles the admin-only endpoints. Routes using it must sit
// behind the RequireAdmin middleware.
type AdminHandler struct {
	queries *store.Queries
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(db *sql.DB) *AdminHandler {
	return &AdminHandler{queries: store.New(db)}
}

// ListUsers handles GET /api/admin/users. Returns every account, newest
// first, as a bare JSON array. Password hashes stay out of the response.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		slog.Error("listing users", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]model.AdminUser, 0, len(users))
	for _, u := range users {
		out = append(out, model.AdminUser{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			IsAdmin:   u.IsAdmin,
			CreatedAt: u.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// DeletePost handles DELETE /api/admin/posts/{id}. Deleting an id that does
// not exist still succeeds; the operation is idempotent.
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	if err := h.queries.DeletePost(r.Context(), id); err != nil {
		slog.Error("deleting post", "post_id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ident := middleware.GetIdentity(r)
	slog.Info("post deleted by admin", "post_id", id, "admin_id", ident.UserID)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Post deleted successfully",
	})
}

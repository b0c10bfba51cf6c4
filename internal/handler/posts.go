// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/oboard-go/internal/middleware"
	"github.com/olegiv/oboard-go/internal/model"
	"github.com/olegiv/oboard-go/internal/store"
)

// FeedLimit is the maximum number of posts returned by the feed.
const FeedLimit = 50

// PostHandler handles post creation and the public feed.
type PostHandler struct {
	queries *store.Queries
}

// NewPostHandler creates a new post handler.
func NewPostHandler(db *sql.DB) *PostHandler {
	return &PostHandler{queries: store.New(db)}
}

type createPostRequest struct {
	Content string `json:"content"`
}

// Create handles POST /api/posts. Requires a logged-in user.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r)
	if ident == nil {
		writeJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		writeJSONError(w, http.StatusBadRequest, "Content cannot be empty")
		return
	}

	post, err := h.queries.CreatePost(r.Context(), store.CreatePostParams{
		UserID:    ident.UserID,
		Content:   content,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("creating post", "user_id", ident.UserID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Post published successfully",
		"post": model.CreatedPost{
			ID:        post.ID,
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
		},
	})
}

// List handles GET /api/posts. The feed is public and returns the newest
// posts first as a bare JSON array.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListPostsWithAuthors(r.Context(), FeedLimit)
	if err != nil {
		slog.Error("listing posts", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	feed := make([]model.FeedPost, 0, len(posts))
	for _, p := range posts {
		feed = append(feed, model.FeedPost{
			ID:        p.ID,
			UserID:    p.UserID,
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
			Username:  p.Username,
		})
	}

	writeJSON(w, http.StatusOK, feed)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/olegiv/oboard-go/internal/store"
)

func TestAdminListUsers(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "admin", "admin@example.com", "admin123", true)
	app.createUser(t, "alice", "alice@example.com", "secret123", false)
	cookies := app.login(t, "admin", "admin123")

	rec := app.doJSON(t, http.MethodGet, "/api/admin/users", nil, cookies...)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	users := decodeArray(t, rec)
	if len(users) != 2 {
		t.Fatalf("len(users) = %d, want 2", len(users))
	}

	for _, u := range users {
		if u["username"] == nil || u["email"] == nil || u["is_admin"] == nil || u["created_at"] == nil {
			t.Errorf("user missing fields: %v", u)
		}
		for _, secret := range []string{"password", "password_hash", "PasswordHash"} {
			if _, leaked := u[secret]; leaked {
				t.Errorf("user listing leaked %q", secret)
			}
		}
	}
}

func TestAdminListUsers_Forbidden(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "alice", "alice@example.com", "secret123", false)

	// Anonymous
	rec := app.doJSON(t, http.MethodGet, "/api/admin/users", nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("anonymous status = %d, want 403", rec.Code)
	}

	// Logged in, but not admin
	cookies := app.login(t, "alice", "secret123")
	rec = app.doJSON(t, http.MethodGet, "/api/admin/users", nil, cookies...)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-admin status = %d, want 403", rec.Code)
	}
}

func TestAdminDeletePost(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "admin", "admin@example.com", "admin123", true)
	alice := app.createUser(t, "alice", "alice@example.com", "secret123", false)

	post, err := store.New(app.db).CreatePost(t.Context(), store.CreatePostParams{
		UserID: alice.ID, Content: "delete me", CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	cookies := app.login(t, "admin", "admin123")
	rec := app.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/admin/posts/%d", post.ID), nil, cookies...)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	feed := app.doJSON(t, http.MethodGet, "/api/posts", nil)
	if posts := decodeArray(t, feed); len(posts) != 0 {
		t.Errorf("post should be gone from the feed, got %v", posts)
	}
}

func TestAdminDeletePost_Idempotent(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "admin", "admin@example.com", "admin123", true)
	cookies := app.login(t, "admin", "admin123")

	// Deleting an id that never existed still succeeds
	rec := app.doJSON(t, http.MethodDelete, "/api/admin/posts/99999", nil, cookies...)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAdminDeletePost_InvalidID(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "admin", "admin@example.com", "admin123", true)
	cookies := app.login(t, "admin", "admin123")

	rec := app.doJSON(t, http.MethodDelete, "/api/admin/posts/not-a-number", nil, cookies...)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAdminDeletePost_Forbidden(t *testing.T) {
	app := newTestApp(t)
	alice := app.createUser(t, "alice", "alice@example.com", "secret123", false)

	post, err := store.New(app.db).CreatePost(t.Context(), store.CreatePostParams{
		UserID: alice.ID, Content: "keep me", CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	// The post's own author cannot delete it without the admin role
	cookies := app.login(t, "alice", "secret123")
	rec := app.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/admin/posts/%d", post.ID), nil, cookies...)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}

	feed := app.doJSON(t, http.MethodGet, "/api/posts", nil)
	if posts := decodeArray(t, feed); len(posts) != 1 {
		t.Errorf("post should still be in the feed")
	}
}

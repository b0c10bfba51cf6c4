// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/oboard-go/internal/middleware"
)

// NewRouter builds the full HTTP router: ambient middleware, the health
// endpoint, and the /api routes.
func NewRouter(db *sql.DB, sm *scs.SessionManager, csrfCfg middleware.CSRFConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(sm.LoadAndSave)
	r.Use(middleware.CSRF(csrfCfg))
	r.Use(middleware.LoadIdentity(sm))

	healthHandler := NewHealthHandler(db)
	authHandler := NewAuthHandler(db, sm)
	postHandler := NewPostHandler(db)
	adminHandler := NewAdminHandler(db)

	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/session", authHandler.Session)

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.List)
			r.With(middleware.RequireUser()).Post("/", postHandler.Create)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin())
			r.Get("/users", adminHandler.ListUsers)
			r.Delete("/posts/{id}", adminHandler.DeletePost)
		})
	})

	return r
}

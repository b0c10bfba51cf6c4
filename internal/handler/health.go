// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"time"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// healthStatus is the health check response.
type healthStatus struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// Health handles GET /health. Reports degraded with a 503 when the database
// does not answer a ping.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := healthStatus{
		Status: "healthy",
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	}

	code := http.StatusOK
	if err := h.db.PingContext(r.Context()); err != nil {
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, status)
}

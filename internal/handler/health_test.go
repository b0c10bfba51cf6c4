// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"testing"
)

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.doJSON(t, http.MethodGet, "/health", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
	if body["uptime"] == nil {
		t.Error("expected uptime in response")
	}
}

func TestHealth_DegradedWhenDBClosed(t *testing.T) {
	app := newTestApp(t)
	_ = app.db.Close()

	rec := app.doJSON(t, http.MethodGet, "/health", nil)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if decodeBody(t, rec)["status"] != "degraded" {
		t.Error("expected degraded status")
	}
}

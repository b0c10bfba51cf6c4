// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Content string `json:"content"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"content":"hi"}`))
	if err := decodeJSON(r, &dst); err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	if dst.Content != "hi" {
		t.Errorf("Content = %q, want hi", dst.Content)
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	bodies := []string{
		"",
		"not json",
		`{"content":"a"} {"content":"b"}`, // two values
		`[1,2,3] trailing`,
	}

	for _, body := range bodies {
		var dst map[string]any
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if err := decodeJSON(r, &dst); err == nil {
			t.Errorf("decodeJSON(%q) succeeded, want error", body)
		}
	}
}

func TestDecodeJSON_OversizedBody(t *testing.T) {
	big := `{"content":"` + strings.Repeat("x", maxBodySize) + `"}`

	var dst map[string]any
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	if err := decodeJSON(r, &dst); err == nil {
		t.Error("expected error for oversized body")
	}
}

func TestWriteJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSONError(rec, http.StatusTeapot, "nope")

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"nope"}` {
		t.Errorf("body = %s", got)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "testing"

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantOK   bool
	}{
		{"valid", "alice", "alice@example.com", "secret123", true},
		{"min username", "abc", "a@example.com", "secret", true},
		{"max username", "abcdefghijklmnopqrst", "a@example.com", "secret", true},
		{"empty username", "", "a@example.com", "secret", false},
		{"empty email", "alice", "", "secret", false},
		{"empty password", "alice", "a@example.com", "", false},
		{"username too short", "ab", "a@example.com", "secret", false},
		{"username too long", "abcdefghijklmnopqrstu", "a@example.com", "secret", false},
		{"email without at", "alice", "example.com", "secret", false},
		{"email with display name", "alice", "Bob <bob@example.com>", "secret", false},
		{"password too short", "alice", "a@example.com", "12345", false},
		{"min password", "alice", "a@example.com", "123456", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateRegistration(tt.username, tt.email, tt.password)
			if ok := msg == ""; ok != tt.wantOK {
				t.Errorf("validateRegistration(%q, %q, %q) = %q, wantOK %v",
					tt.username, tt.email, tt.password, msg, tt.wantOK)
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user+tag@example.com", "first.last@sub.example.org"}
	invalid := []string{"", "plain", "@example.com", "user@", "Display <x@y.z>", "two@@at.com"}

	for _, addr := range valid {
		if !validEmail(addr) {
			t.Errorf("validEmail(%q) = false, want true", addr)
		}
	}
	for _, addr := range invalid {
		if validEmail(addr) {
			t.Errorf("validEmail(%q) = true, want false", addr)
		}
	}
}

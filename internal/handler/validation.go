// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Registration field limits.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
	MinPasswordLength = 6
)

// validateRegistration checks the registration fields and returns a
// client-facing message for the first problem found, or "" if all is well.
func validateRegistration(username, email, password string) string {
	if username == "" || email == "" || password == "" {
		return "All fields are required"
	}
	if n := utf8.RuneCountInString(username); n < MinUsernameLength || n > MaxUsernameLength {
		return "Username must be between 3 and 20 characters"
	}
	if !validEmail(email) {
		return "Invalid email address"
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return "Password must be at least 6 characters"
	}
	return ""
}

// validEmail reports whether addr parses as a bare RFC 5322 address.
func validEmail(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return false
	}
	// Reject display-name forms like "Bob <bob@example.com>"
	return parsed.Address == strings.TrimSpace(addr)
}

package store

import "strings"

// IsUniqueViolation reports whether err is a SQLite UNIQUE constraint
// violation. Both the modernc and mattn drivers surface the violation in the
// error text; matching on it keeps the check driver-agnostic.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

package utils

import "strings"

// IsUniqueViolation matches the duplicate-key errors Postgres and SQLite
// report when a unique index rejects an insert.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

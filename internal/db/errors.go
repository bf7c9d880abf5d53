package db

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned by single-row lookups with zero rows.
	// For exceptions it means "no override", not a failure.
	ErrNotFound = errors.New("not found")

	// ErrSlotTaken is the constraint violation for a date/time already
	// occupied. The caller surfaces it as a recoverable conflict, never
	// retries automatically.
	ErrSlotTaken = errors.New("slot already taken")
)

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrConstraint
	}
	return false
}

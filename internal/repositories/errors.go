package repositories

import "errors"

// Sentinel errors shared by all repository implementations. Callers match
// them with errors.Is.
var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when an insert violates a unique index.
	// It is the authoritative conflict signal: the database enforces the
	// constraint even when an application-level existence check raced.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Package store provides gorm-backed persistence for users and results.
package store

import "errors"

// Sentinel errors shared by both stores. Callers match with errors.Is.
var (
	// ErrNotFound is returned when a lookup by email or embg has no match.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates the unique email or
	// embg constraint.
	ErrDuplicate = errors.New("duplicate record")
)

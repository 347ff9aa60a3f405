package store

import "errors"

// Sentinel errors returned by the data access layer.
var (
	// ErrNotConfigured is returned by writes when no store is configured.
	ErrNotConfigured = errors.New("database not configured: set DATABASE_URL")
	// ErrDuplicateSlug is the store rejecting a slug that is already taken.
	ErrDuplicateSlug = errors.New("duplicate project slug")
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("project not found")
)

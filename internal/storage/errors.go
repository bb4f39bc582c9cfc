// Package storage holds the error values shared by every store backend.
package storage

import "errors"

var (
	// ErrValidation marks input that was rejected before anything was written.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks an operation that referenced an unknown id.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable marks a failed or timed out round trip to the database.
	ErrUnavailable = errors.New("store unavailable")
)

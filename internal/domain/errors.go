package domain

import "errors"

// Sentinel errors shared across repositories and services.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for malformed requests that never reach storage.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict is returned by the reservation store when a write collides with
	// an existing reservation under the storage-level overlap guard.
	ErrConflict = errors.New("reservation conflict")
)

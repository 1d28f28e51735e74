package matching

import "errors"

var (
	// ErrNotFound is returned when a referenced supplier or catalog product does not exist
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write collides with an existing link or elimination
	ErrConflict = errors.New("conflicting record already exists")

	// ErrValidation is returned for malformed thresholds, limits or import rows
	ErrValidation = errors.New("invalid parameter")
)

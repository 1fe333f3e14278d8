package journal

import "errors"

// Domain-specific errors for the journal.
var (
	// ErrNotFound is returned when no matching entry exists.
	ErrNotFound = errors.New("journal: entry not found")

	// ErrInvalidEntry is returned when an entry fails validation.
	ErrInvalidEntry = errors.New("journal: invalid entry")
)

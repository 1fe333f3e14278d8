package journal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of one pipeline run.
type Status string

const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Entry is one journal row.
type Entry struct {
	ID        int64
	RunID     uuid.UUID
	Pipeline  string
	Status    Status
	Lines     int
	Bytes     int
	Error     string
	CreatedAt time.Time
}

// NewRunID returns a fresh identifier shared by all entries of one invocation.
func NewRunID() uuid.UUID {
	return uuid.New()
}

// Validate checks the fields the schema constrains.
func (e *Entry) Validate() error {
	if e.RunID == uuid.Nil {
		return fmt.Errorf("%w: run id is required", ErrInvalidEntry)
	}
	switch e.Pipeline {
	case "spot", "day":
	default:
		return fmt.Errorf("%w: unknown pipeline %q", ErrInvalidEntry, e.Pipeline)
	}
	switch e.Status {
	case StatusSent, StatusSkipped, StatusFailed:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidEntry, e.Status)
	}
	return nil
}

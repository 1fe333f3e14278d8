package export

import "errors"

// Domain-specific errors for the export package.
var (
	// ErrNoTransport is returned by New when Options.Transport is nil.
	ErrNoTransport = errors.New("export: transport is required")

	// ErrInvalidTarget indicates the write URL cannot be built.
	ErrInvalidTarget = errors.New("export: invalid target")

	// ErrInvalidTimeSource indicates an unknown spot time source.
	ErrInvalidTimeSource = errors.New("export: invalid spot time source")

	// ErrTransport wraps any failure reported by the Transport.
	ErrTransport = errors.New("export: transport failed")
)

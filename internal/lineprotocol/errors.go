package lineprotocol

import "errors"

var (
	// ErrInvalidPrecision is returned for an unknown timestamp precision.
	ErrInvalidPrecision = errors.New("lineprotocol: invalid precision")
)

package inverter

import "errors"

// Domain errors for the inverter package.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, inverter.ErrNoInverters) {
//	    // nothing to export
//	}
var (
	// ErrNameTooLong is returned when a device name or type exceeds MaxNameLength.
	ErrNameTooLong = errors.New("inverter: name too long")

	// ErrNoInverters is returned when a snapshot contains no records.
	ErrNoInverters = errors.New("inverter: no inverters")

	// ErrInvalidSnapshot is returned when a snapshot file cannot be decoded.
	ErrInvalidSnapshot = errors.New("inverter: invalid snapshot")
)

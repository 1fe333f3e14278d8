package inverter

import (
	"fmt"
	"unicode/utf8"
)

// MaxNameLength is the longest device name or type accepted, in bytes.
// Inverters report these in 32-character fields.
const MaxNameLength = 32

// Validate checks the record's bounded string fields.
//
// Returns:
//   - error: wrapping ErrNameTooLong, or nil if valid
func (r *Record) Validate() error {
	if len(r.Name) > MaxNameLength {
		return fmt.Errorf("%w: name %q has %d bytes, max %d", ErrNameTooLong, r.Name, len(r.Name), MaxNameLength)
	}
	if len(r.Type) > MaxNameLength {
		return fmt.Errorf("%w: type %q has %d bytes, max %d", ErrNameTooLong, r.Type, len(r.Type), MaxNameLength)
	}
	return nil
}

// ClampName truncates s to at most MaxNameLength bytes without
// splitting a UTF-8 sequence.
func ClampName(s string) string {
	if len(s) <= MaxNameLength {
		return s
	}
	cut := MaxNameLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

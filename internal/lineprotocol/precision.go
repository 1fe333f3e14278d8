package lineprotocol

import (
	"fmt"
	"time"
)

// Precision is the timestamp unit of written points.
// Its string form is the value of the write API's precision parameter.
type Precision string

// Supported precisions.
const (
	Seconds      Precision = "s"
	Milliseconds Precision = "ms"
	Microseconds Precision = "us"
	Nanoseconds  Precision = "ns"
)

// ParsePrecision converts a precision parameter value to a Precision.
func ParsePrecision(s string) (Precision, error) {
	switch p := Precision(s); p {
	case Seconds, Milliseconds, Microseconds, Nanoseconds:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPrecision, s)
	}
}

// Duration returns the length of one timestamp unit.
// Unknown precisions are treated as seconds.
func (p Precision) Duration() time.Duration {
	switch p {
	case Milliseconds:
		return time.Millisecond
	case Microseconds:
		return time.Microsecond
	case Nanoseconds:
		return time.Nanosecond
	default:
		return time.Second
	}
}

// Timestamp converts t to an integer count of precision units since the epoch.
func (p Precision) Timestamp(t time.Time) int64 {
	switch p {
	case Milliseconds:
		return t.UnixMilli()
	case Microseconds:
		return t.UnixMicro()
	case Nanoseconds:
		return t.UnixNano()
	default:
		return t.Unix()
	}
}

// String returns the precision parameter value.
func (p Precision) String() string {
	return string(p)
}

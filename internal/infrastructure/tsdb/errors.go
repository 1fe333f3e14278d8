package tsdb

import "errors"

// Sentinel errors for time-series database operations.
//
// These errors can be checked using errors.Is() for specific handling:
//
//	if errors.Is(err, tsdb.ErrWriteFailed) {
//	    // Handle rejected write
//	}
var (
	// ErrWriteFailed indicates a write was rejected or could not be sent.
	ErrWriteFailed = errors.New("tsdb: write failed")

	// ErrHealthCheckFailed indicates the /ping endpoint did not answer 2xx.
	ErrHealthCheckFailed = errors.New("tsdb: health check failed")

	// ErrDisabled indicates InfluxDB export is disabled in config.
	ErrDisabled = errors.New("tsdb: disabled in configuration")

	// ErrClosed indicates the client has been closed.
	ErrClosed = errors.New("tsdb: client closed")
)

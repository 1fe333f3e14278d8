package influxdb

import "errors"

// Sentinel errors for InfluxDB operations.
//
// These errors can be checked using errors.Is() for specific handling:
//
//	if errors.Is(err, influxdb.ErrWriteFailed) {
//	    // Handle rejected write
//	}
var (
	// ErrNotConnected indicates the client has been closed.
	ErrNotConnected = errors.New("influxdb: not connected")

	// ErrConnectionFailed indicates a ping did not succeed.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrWriteFailed indicates a write operation failed.
	ErrWriteFailed = errors.New("influxdb: write failed")

	// ErrDisabled indicates InfluxDB export is disabled in config.
	ErrDisabled = errors.New("influxdb: disabled in configuration")

	// ErrInvalidConfig indicates the configuration cannot build a client.
	ErrInvalidConfig = errors.New("influxdb: invalid configuration")
)

// Package tsdb posts InfluxDB line protocol over HTTP.
//
// It is the default export transport: a thin wrapper around net/http that
// sends a prebuilt payload to a prebuilt write URL and classifies the
// response. Zero external dependencies.
//
// # Usage
//
//	client, err := tsdb.New(cfg.InfluxDB)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.Post(ctx, "http://localhost:8086/write?db=solar", payload,
//	    tsdb.BasicAuth("user", "pass"))
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
//
// # Error Handling
//
// Any non-2xx response or network failure is returned wrapped in
// ErrWriteFailed. There is no retry; the caller decides what to do.
package tsdb

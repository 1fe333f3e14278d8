// Package influxdb writes line protocol through the official
// influxdb-client-go v2 library.
//
// It is selected with influxdb.transport: "client" and serves the same
// role as package tsdb: send one prebuilt payload per export. Both the
// 1.x API (legacy mode, via the client's v1 compatibility convention) and
// the 2.x API are supported.
//
// # Usage
//
//	client, err := influxdb.New(cfg.InfluxDB)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if err := client.HealthCheck(ctx); err != nil {
//	    log.Printf("influxdb not reachable: %v", err)
//	}
//	err = client.Post(ctx, "", payload, tsdb.Credential{})
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
//
// # Error Handling
//
// Write failures are returned directly, wrapped in ErrWriteFailed.
package influxdb

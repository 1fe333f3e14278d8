// Package inverter holds the decoded inverter data handed to the exporter.
//
// A Record is one polling-cycle snapshot of a single inverter: identity,
// instantaneous spot measurements and the daily history buffer. Values are
// kept in the raw integer units the inverter reports (mA, cV, Wh, seconds);
// scaling to engineering units happens only when a record is encoded.
//
// # Ownership
//
// Records belong to the caller. Exporters and aggregators read them and
// never modify them; derived records (the plant total) are new values.
//
// # Boundary checks
//
// Device names and types are bounded by MaxNameLength. LoadSnapshot
// validates records as they enter the process; later stages trust them.
package inverter

// Package export turns inverter records into line-protocol payloads and
// hands them to a Transport.
//
// Two pipelines are provided:
//
//   - ExportSpot: one line per inverter plus a plant "Net" total, stamped
//     with the first inverter's clock or the wall clock.
//   - ExportDay: day histories merged by timestamp, one line per complete
//     group.
//
// Each export is a single synchronous POST. The Exporter holds no mutable
// state between calls and is safe for concurrent use when its Transport is.
//
// Usage:
//
//	exp, err := export.New(export.Options{
//	    Transport: client,
//	    Target:    export.TargetFromConfig(cfg.InfluxDB),
//	    PlantName: cfg.Plant.Name,
//	})
//	res, err := exp.ExportSpot(ctx, records)
package export

// Package publish mirrors spot readings to MQTT as retained JSON documents.
//
// One document per inverter goes to {prefix}/{serial}; the plant total goes
// to {prefix}/plant. Field names and scaling match the line-protocol spot
// measurement.
package publish

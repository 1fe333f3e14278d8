// Package lineprotocol renders inverter records as InfluxDB line protocol.
//
// Two measurements are produced:
//
//	spot,DeviceName=SB\ 3000,DeviceType=SB\ 3000HF-30,Serial=2130012345 Pdc1=1650,...,Efficiency=92.7 1700000000
//	day Energy=4600.5,Power=1.2 1700000000
//
// Spot fields are emitted in a fixed order from a static table of
// (name, accessor, divisor) entries; each raw integer value is divided by
// its divisor and written as the shortest exact decimal text.
//
// # Precision
//
// Timestamps are written in the unit given by the Encoder's Precision.
// The same Precision must be sent to the server as the write precision,
// so callers thread one value through both the encoder and the URL.
//
// # Escaping
//
// Tag values are escaped with EscapeTag. Serial is numeric and written as is.
package lineprotocol

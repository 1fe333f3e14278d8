// Package aggregate combines the records of several inverters.
//
// PlantTotal folds spot records into one synthetic "Net" record for the
// whole plant. Power, current and energy add up; voltage, frequency,
// time counters, signal strength and temperature take the maximum.
//
// GroupDays merges daily history buffers by timestamp and keeps only
// groups to which every inverter contributed, so a sleeping inverter
// never produces a partial plant total.
package aggregate

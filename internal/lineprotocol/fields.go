package lineprotocol

import "github.com/nerrad567/solar-export/internal/inverter"

// spotField maps one spot field to its raw value and divisor.
type spotField struct {
	name    string
	value   func(r *inverter.Record) float64
	divisor float64
}

// spotFields is the ordered spot field table.
var spotFields = []spotField{
	{"Pdc1", func(r *inverter.Record) float64 { return float64(r.Pdc1) }, 1},
	{"Pdc2", func(r *inverter.Record) float64 { return float64(r.Pdc2) }, 1},
	{"Idc1", func(r *inverter.Record) float64 { return float64(r.Idc1) }, 1000},
	{"Idc2", func(r *inverter.Record) float64 { return float64(r.Idc2) }, 1000},
	{"Udc1", func(r *inverter.Record) float64 { return float64(r.Udc1) }, 100},
	{"Udc2", func(r *inverter.Record) float64 { return float64(r.Udc2) }, 100},
	{"Pac1", func(r *inverter.Record) float64 { return float64(r.Pac1) }, 1},
	{"Pac2", func(r *inverter.Record) float64 { return float64(r.Pac2) }, 1},
	{"Pac3", func(r *inverter.Record) float64 { return float64(r.Pac3) }, 1},
	{"Iac1", func(r *inverter.Record) float64 { return float64(r.Iac1) }, 1000},
	{"Iac2", func(r *inverter.Record) float64 { return float64(r.Iac2) }, 1000},
	{"Iac3", func(r *inverter.Record) float64 { return float64(r.Iac3) }, 1000},
	{"Uac1", func(r *inverter.Record) float64 { return float64(r.Uac1) }, 100},
	{"Uac2", func(r *inverter.Record) float64 { return float64(r.Uac2) }, 100},
	{"Uac3", func(r *inverter.Record) float64 { return float64(r.Uac3) }, 100},
	{"EToday", func(r *inverter.Record) float64 { return float64(r.EToday) }, 1000},
	{"ETotal", func(r *inverter.Record) float64 { return float64(r.ETotal) }, 1000},
	{"GridFreq", func(r *inverter.Record) float64 { return float64(r.GridFreq) }, 100},
	{"OperationTime", func(r *inverter.Record) float64 { return float64(r.OperationTime) }, 3600},
	{"FeedInTime", func(r *inverter.Record) float64 { return float64(r.FeedInTime) }, 3600},
	{"BT_Signal", func(r *inverter.Record) float64 { return r.BTSignal }, 1},
	{"Temperature", func(r *inverter.Record) float64 { return float64(r.Temperature) }, 100},
	{"PdcTot", func(r *inverter.Record) float64 { return float64(r.PdcTotal) }, 1},
	{"PacTot", func(r *inverter.Record) float64 { return float64(r.PacTotal) }, 1},
	{"Efficiency", func(r *inverter.Record) float64 { return r.Efficiency }, 1},
}

// FieldValue is one scaled spot field.
type FieldValue struct {
	Name  string
	Value float64
}

// SpotFieldNames returns the spot field names in wire order.
func SpotFieldNames() []string {
	names := make([]string, len(spotFields))
	for i, f := range spotFields {
		names[i] = f.name
	}
	return names
}

// SpotValues returns the record's scaled spot fields in wire order.
func SpotValues(r *inverter.Record) []FieldValue {
	values := make([]FieldValue, len(spotFields))
	for i, f := range spotFields {
		values[i] = FieldValue{Name: f.name, Value: f.value(r) / f.divisor}
	}
	return values
}

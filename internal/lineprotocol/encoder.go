package lineprotocol

import (
	"strconv"
	"strings"
	"time"

	"github.com/nerrad567/solar-export/internal/inverter"
)

// Measurement names.
const (
	MeasurementSpot = "spot"
	MeasurementDay  = "day"
)

// spotLineSize is a starting buffer size that fits a typical spot line.
const spotLineSize = 512

// Encoder renders records as line protocol with timestamps in Precision units.
// The zero value writes second-precision timestamps.
type Encoder struct {
	Precision Precision
}

// NewEncoder returns an Encoder for the given precision.
func NewEncoder(p Precision) Encoder {
	return Encoder{Precision: p}
}

// Spot renders one spot line for r stamped with t.
//
// Format:
//
//	spot,DeviceName=<name>,DeviceType=<type>,Serial=<serial> <fields> <timestamp>
func (e Encoder) Spot(r *inverter.Record, t time.Time) string {
	var b strings.Builder
	b.Grow(spotLineSize)

	b.WriteString(MeasurementSpot)
	b.WriteString(",DeviceName=")
	b.WriteString(EscapeTag(r.Name))
	b.WriteString(",DeviceType=")
	b.WriteString(EscapeTag(r.Type))
	b.WriteString(",Serial=")
	b.WriteString(strconv.FormatUint(uint64(r.Serial), 10))

	b.WriteByte(' ')
	for i, f := range spotFields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.name)
		b.WriteByte('=')
		b.WriteString(formatValue(f.value(r) / f.divisor))
	}

	b.WriteByte(' ')
	b.WriteString(strconv.FormatInt(e.Precision.Timestamp(t), 10))

	return b.String()
}

// Day renders one day line. Energy and power are written in kWh and kW.
//
// Format:
//
//	day Energy=<kWh>,Power=<kW> <timestamp>
func (e Encoder) Day(d inverter.DayRecord) string {
	var b strings.Builder

	b.WriteString(MeasurementDay)
	b.WriteString(" Energy=")
	b.WriteString(formatValue(float64(d.Energy) / 1000))
	b.WriteString(",Power=")
	b.WriteString(formatValue(float64(d.Power) / 1000))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatInt(e.Precision.Timestamp(time.Unix(d.Timestamp, 0)), 10))

	return b.String()
}

// Join concatenates lines with a single newline and no trailing newline.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// formatValue writes v as the shortest decimal that round-trips.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package lineprotocol

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nerrad567/solar-export/internal/inverter"
)

// spotTime is a fixed timestamp used throughout the encoder tests.
var spotTime = time.Unix(1700000000, 0)

func testInverter() *inverter.Record {
	return &inverter.Record{
		Name:   "Test",
		Type:   "Inverter",
		Serial: 12356,
		Pac1:   239,
		Uac1:   23900,
		Iac1:   1000,
		EToday: 5200,
		ETotal: 4600000,
	}
}

func TestEncoder_Spot(t *testing.T) {
	enc := NewEncoder(Seconds)

	got := enc.Spot(testInverter(), spotTime)
	want := "spot,DeviceName=Test,DeviceType=Inverter,Serial=12356 " +
		"Pdc1=0,Pdc2=0,Idc1=0,Idc2=0,Udc1=0,Udc2=0," +
		"Pac1=239,Pac2=0,Pac3=0,Iac1=1,Iac2=0,Iac3=0,Uac1=239,Uac2=0,Uac3=0," +
		"EToday=5.2,ETotal=4600,GridFreq=0,OperationTime=0,FeedInTime=0," +
		"BT_Signal=0,Temperature=0,PdcTot=0,PacTot=0,Efficiency=0 1700000000"

	if got != want {
		t.Errorf("Spot() =\n%s\nwant\n%s", got, want)
	}
}

func TestEncoder_SpotScaleFactors(t *testing.T) {
	rec := &inverter.Record{
		Pdc1:          1650,
		Idc1:          4321,
		Udc1:          38210,
		GridFreq:      4998,
		OperationTime: 5400,
		FeedInTime:    7200,
		BTSignal:      63.5,
		Temperature:   3850,
		PdcTotal:      3300,
		PacTotal:      3100,
		Efficiency:    92.5,
	}

	values := map[string]string{}
	line := NewEncoder(Seconds).Spot(rec, spotTime)
	fieldSection := strings.Split(line, " ")[1]
	for _, kv := range strings.Split(fieldSection, ",") {
		parts := strings.SplitN(kv, "=", 2)
		values[parts[0]] = parts[1]
	}

	tests := map[string]string{
		"Pdc1":          "1650",
		"Idc1":          "4.321",
		"Udc1":          "382.1",
		"GridFreq":      "49.98",
		"OperationTime": "1.5",
		"FeedInTime":    "2",
		"BT_Signal":     "63.5",
		"Temperature":   "38.5",
		"PdcTot":        "3300",
		"PacTot":        "3100",
		"Efficiency":    "92.5",
	}
	for field, want := range tests {
		if got := values[field]; got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}
}

func TestEncoder_SpotFieldOrder(t *testing.T) {
	line := NewEncoder(Seconds).Spot(testInverter(), spotTime)
	fieldSection := strings.Split(line, " ")[1]

	var names []string
	for _, kv := range strings.Split(fieldSection, ",") {
		names = append(names, strings.SplitN(kv, "=", 2)[0])
	}

	want := SpotFieldNames()
	if len(names) != len(want) {
		t.Fatalf("got %d fields, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("field %d = %s, want %s", i, names[i], want[i])
		}
	}
	if want[0] != "Pdc1" || want[len(want)-1] != "Efficiency" {
		t.Errorf("unexpected table bounds: %s..%s", want[0], want[len(want)-1])
	}
}

func TestEncoder_SpotEscapesTags(t *testing.T) {
	rec := &inverter.Record{Name: "Roof, South", Type: "SB=3000 HF", Serial: 42}

	line := NewEncoder(Seconds).Spot(rec, spotTime)
	prefix := `spot,DeviceName=Roof\,\ South,DeviceType=SB\=3000\ HF,Serial=42 `
	if !strings.HasPrefix(line, prefix) {
		t.Errorf("Spot() = %q, want prefix %q", line, prefix)
	}
}

func TestEncoder_SpotEmptyTags(t *testing.T) {
	line := NewEncoder(Seconds).Spot(&inverter.Record{}, spotTime)
	if !strings.HasPrefix(line, "spot,DeviceName=,DeviceType=,Serial=0 Pdc1=0,") {
		t.Errorf("Spot() = %q", line)
	}
}

func TestEncoder_Precision(t *testing.T) {
	ts := time.Unix(1700000000, 0)

	tests := []struct {
		precision Precision
		suffix    string
	}{
		{Seconds, " 1700000000"},
		{Milliseconds, " 1700000000000"},
		{Microseconds, " 1700000000000000"},
		{Nanoseconds, " 1700000000000000000"},
		{"", " 1700000000"},
	}

	for _, tt := range tests {
		t.Run(string(tt.precision), func(t *testing.T) {
			line := Encoder{Precision: tt.precision}.Spot(testInverter(), ts)
			if !strings.HasSuffix(line, tt.suffix) {
				t.Errorf("Spot() = %q, want suffix %q", line, tt.suffix)
			}
		})
	}
}

func TestEncoder_Day(t *testing.T) {
	enc := NewEncoder(Seconds)

	tests := []struct {
		name string
		day  inverter.DayRecord
		want string
	}{
		{
			name: "fractional",
			day:  inverter.DayRecord{Timestamp: 1700000300, Power: 1530, Energy: 4600450},
			want: "day Energy=4600.45,Power=1.53 1700000300",
		},
		{
			name: "whole numbers",
			day:  inverter.DayRecord{Timestamp: 1700000600, Power: 2000, Energy: 7200000},
			want: "day Energy=7200,Power=2 1700000600",
		},
		{
			name: "zero power",
			day:  inverter.DayRecord{Timestamp: 1700000900, Energy: 5},
			want: "day Energy=0.005,Power=0 1700000900",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := enc.Day(tt.day); got != tt.want {
				t.Errorf("Day() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncoder_DayMilliseconds(t *testing.T) {
	got := NewEncoder(Milliseconds).Day(inverter.DayRecord{Timestamp: 100, Power: 1000, Energy: 1000})
	if got != "day Energy=1,Power=1 100000" {
		t.Errorf("Day() = %q", got)
	}
}

func TestJoin(t *testing.T) {
	if got := Join(nil); got != "" {
		t.Errorf("Join(nil) = %q, want empty", got)
	}
	if got := Join([]string{"a"}); got != "a" {
		t.Errorf("Join(one) = %q, want %q", got, "a")
	}
	if got := Join([]string{"a", "b", "c"}); got != "a\nb\nc" {
		t.Errorf("Join(three) = %q", got)
	}
}

func TestSpotValues(t *testing.T) {
	values := SpotValues(testInverter())
	if len(values) != len(SpotFieldNames()) {
		t.Fatalf("len(SpotValues) = %d, want %d", len(values), len(SpotFieldNames()))
	}

	byName := map[string]float64{}
	for _, v := range values {
		byName[v.Name] = v.Value
	}
	if byName["Uac1"] != 239 {
		t.Errorf("Uac1 = %v, want 239", byName["Uac1"])
	}
	if byName["EToday"] != 5.2 {
		t.Errorf("EToday = %v, want 5.2", byName["EToday"])
	}
}

func TestParsePrecision(t *testing.T) {
	for _, s := range []string{"s", "ms", "us", "ns"} {
		p, err := ParsePrecision(s)
		if err != nil {
			t.Errorf("ParsePrecision(%q) error = %v", s, err)
		}
		if p.String() != s {
			t.Errorf("ParsePrecision(%q) = %q", s, p)
		}
	}

	if _, err := ParsePrecision("h"); !errors.Is(err, ErrInvalidPrecision) {
		t.Errorf("ParsePrecision(h) error = %v, want ErrInvalidPrecision", err)
	}
}

func TestPrecision_Duration(t *testing.T) {
	tests := map[Precision]time.Duration{
		Seconds:      time.Second,
		Milliseconds: time.Millisecond,
		Microseconds: time.Microsecond,
		Nanoseconds:  time.Nanosecond,
	}
	for p, want := range tests {
		if got := p.Duration(); got != want {
			t.Errorf("%s.Duration() = %v, want %v", p, got, want)
		}
	}
}

package aggregate

import (
	"testing"

	"github.com/nerrad567/solar-export/internal/inverter"
)

func twoInverters() []inverter.Record {
	return []inverter.Record{
		{
			Name: "A", Type: "SB 3000", Serial: 1,
			Pdc1: 260, Idc1: 1100, Udc1: 23600,
			Pac1: 239, Iac1: 1000, Uac1: 23900,
			EToday: 2100, ETotal: 3600000,
			GridFreq: 4998, OperationTime: 7200, FeedInTime: 3600,
			BTSignal: 40, Temperature: 3100,
			PdcTotal: 260, PacTotal: 239,
			DeviceTime: 1700000000,
		},
		{
			Name: "B", Type: "SB 4000", Serial: 2,
			Pdc1: 540, Idc1: 2200, Udc1: 24100,
			Pac1: 500, Iac1: 2100, Uac1: 25000,
			EToday: 4100, ETotal: 3600000,
			GridFreq: 5001, OperationTime: 3600, FeedInTime: 7200,
			BTSignal: 55.5, Temperature: 2800,
			PdcTotal: 540, PacTotal: 500,
			DeviceTime: 1700000005,
		},
	}
}

func TestPlantTotal_Identity(t *testing.T) {
	total := PlantTotal("Rooftop", twoInverters())

	if total.Name != "Rooftop" {
		t.Errorf("Name = %q, want %q", total.Name, "Rooftop")
	}
	if total.Type != NetDeviceType {
		t.Errorf("Type = %q, want %q", total.Type, NetDeviceType)
	}
	if total.Serial != 0 {
		t.Errorf("Serial = %d, want 0", total.Serial)
	}
	if total.DayData != nil {
		t.Errorf("DayData = %v, want nil", total.DayData)
	}
}

func TestPlantTotal_ClampsName(t *testing.T) {
	long := "A plant name that is much longer than thirty-two bytes"
	total := PlantTotal(long, nil)
	if len(total.Name) != inverter.MaxNameLength {
		t.Errorf("len(Name) = %d, want %d", len(total.Name), inverter.MaxNameLength)
	}
}

func TestPlantTotal_AdditiveAndMax(t *testing.T) {
	total := PlantTotal("Plant", twoInverters())

	tests := []struct {
		field string
		got   int64
		want  int64
	}{
		{"Pdc1", total.Pdc1, 800},
		{"Idc1", total.Idc1, 3300},
		{"Pac1", total.Pac1, 739},
		{"Iac1", total.Iac1, 3100},
		{"EToday", total.EToday, 6200},
		{"ETotal", total.ETotal, 7200000},
		{"PdcTotal", total.PdcTotal, 800},
		{"PacTotal", total.PacTotal, 739},
		{"Udc1", total.Udc1, 24100},
		{"Uac1", total.Uac1, 25000},
		{"GridFreq", total.GridFreq, 5001},
		{"OperationTime", total.OperationTime, 7200},
		{"FeedInTime", total.FeedInTime, 7200},
		{"Temperature", total.Temperature, 3100},
		{"DeviceTime", total.DeviceTime, 1700000005},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.field, tt.got, tt.want)
		}
	}

	if total.BTSignal != 55.5 {
		t.Errorf("BTSignal = %v, want 55.5", total.BTSignal)
	}
}

func TestPlantTotal_NegativeMax(t *testing.T) {
	records := []inverter.Record{
		{Temperature: -500, BTSignal: -2},
		{Temperature: -300, BTSignal: -7},
	}
	total := PlantTotal("Plant", records)

	if total.Temperature != -300 {
		t.Errorf("Temperature = %d, want -300", total.Temperature)
	}
	if total.BTSignal != -2 {
		t.Errorf("BTSignal = %v, want -2", total.BTSignal)
	}
}

func TestPlantTotal_Efficiency(t *testing.T) {
	records := []inverter.Record{
		{PdcTotal: 600, PacTotal: 540},
		{PdcTotal: 400, PacTotal: 360},
	}
	total := PlantTotal("Plant", records)
	if total.Efficiency != 90 {
		t.Errorf("Efficiency = %v, want 90", total.Efficiency)
	}
}

func TestPlantTotal_ZeroDCPower(t *testing.T) {
	records := []inverter.Record{{PacTotal: 10}, {}}
	total := PlantTotal("Plant", records)
	if total.Efficiency != 0 {
		t.Errorf("Efficiency = %v, want 0 when no DC power", total.Efficiency)
	}
}

func TestPlantTotal_Empty(t *testing.T) {
	total := PlantTotal("Plant", nil)
	if total.PacTotal != 0 || total.Efficiency != 0 {
		t.Errorf("PlantTotal(nil) = %+v, want zero measurements", total)
	}
}

func TestGroupDays(t *testing.T) {
	tests := []struct {
		name    string
		records []inverter.Record
		want    []inverter.DayRecord
	}{
		{
			name:    "no records",
			records: nil,
			want:    nil,
		},
		{
			name: "single inverter passes through",
			records: []inverter.Record{
				{DayData: []inverter.DayRecord{{Timestamp: 100, Power: 10, Energy: 1000}}},
			},
			want: []inverter.DayRecord{{Timestamp: 100, Power: 10, Energy: 1000}},
		},
		{
			name: "incomplete group dropped",
			records: []inverter.Record{
				{DayData: []inverter.DayRecord{
					{Timestamp: 100, Power: 10, Energy: 1000},
					{Timestamp: 200, Power: 20, Energy: 1100},
				}},
				{DayData: []inverter.DayRecord{
					{Timestamp: 100, Power: 5, Energy: 500},
				}},
			},
			want: []inverter.DayRecord{{Timestamp: 100, Power: 15, Energy: 1500}},
		},
		{
			name: "empty slots ignored",
			records: []inverter.Record{
				{DayData: []inverter.DayRecord{{Timestamp: 100, Power: 1, Energy: 2}, {}}},
				{DayData: []inverter.DayRecord{{}, {Timestamp: 100, Power: 3, Energy: 4}}},
			},
			want: []inverter.DayRecord{{Timestamp: 100, Power: 4, Energy: 6}},
		},
		{
			name: "ascending order",
			records: []inverter.Record{
				{DayData: []inverter.DayRecord{
					{Timestamp: 300, Power: 3, Energy: 30},
					{Timestamp: 100, Power: 1, Energy: 10},
					{Timestamp: 200, Power: 2, Energy: 20},
				}},
				{DayData: []inverter.DayRecord{
					{Timestamp: 200, Power: 2, Energy: 20},
					{Timestamp: 100, Power: 1, Energy: 10},
					{Timestamp: 300, Power: 3, Energy: 30},
				}},
			},
			want: []inverter.DayRecord{
				{Timestamp: 100, Power: 2, Energy: 20},
				{Timestamp: 200, Power: 4, Energy: 40},
				{Timestamp: 300, Power: 6, Energy: 60},
			},
		},
		{
			name: "repeated timestamp does not stand in for another inverter",
			records: []inverter.Record{
				{DayData: []inverter.DayRecord{
					{Timestamp: 100, Power: 1, Energy: 1},
					{Timestamp: 100, Power: 1, Energy: 1},
				}},
				{DayData: []inverter.DayRecord{{Timestamp: 200, Power: 2, Energy: 2}}},
			},
			want: []inverter.DayRecord{},
		},
		{
			name: "repeated timestamp counts once",
			records: []inverter.Record{
				{DayData: []inverter.DayRecord{
					{Timestamp: 100, Power: 1, Energy: 10},
					{Timestamp: 100, Power: 2, Energy: 20},
				}},
				{DayData: []inverter.DayRecord{{Timestamp: 100, Power: 5, Energy: 50}}},
			},
			want: []inverter.DayRecord{{Timestamp: 100, Power: 7, Energy: 70}},
		},
		{
			name: "inverter without history empties result",
			records: []inverter.Record{
				{DayData: []inverter.DayRecord{{Timestamp: 100, Power: 1, Energy: 1}}},
				{},
			},
			want: []inverter.DayRecord{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GroupDays(tt.records)
			if len(got) != len(tt.want) {
				t.Fatalf("GroupDays() returned %d groups, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("group[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

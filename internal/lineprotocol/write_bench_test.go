package lineprotocol

import (
	"testing"

	"github.com/nerrad567/solar-export/internal/inverter"
)

func BenchmarkEncoder_Spot(b *testing.B) {
	rec := testInverter()
	enc := NewEncoder(Seconds)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		enc.Spot(rec, spotTime)
	}
}

func BenchmarkEncoder_Day(b *testing.B) {
	enc := NewEncoder(Seconds)
	day := inverter.DayRecord{Timestamp: 1700000000, Power: 1530, Energy: 4600450}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		enc.Day(day)
	}
}

func BenchmarkEscapeTag(b *testing.B) {
	for i := 0; i < b.N; i++ {
		EscapeTag("Plant 1,Roof=South")
	}
}

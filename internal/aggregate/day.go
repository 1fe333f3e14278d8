package aggregate

import (
	"slices"

	"github.com/nerrad567/solar-export/internal/inverter"
)

// GroupDays merges the day histories of records by timestamp.
//
// A group is complete when every record contributes an entry at its
// timestamp. Complete groups are folded into one DayRecord: the largest
// timestamp, summed power and summed energy. Other groups are dropped.
// A record repeating a timestamp counts once, with its last entry.
// Unfilled entries are skipped. The result is ordered by ascending timestamp.
func GroupDays(records []inverter.Record) []inverter.DayRecord {
	if len(records) == 0 {
		return nil
	}

	// timestamp -> record index -> entry
	groups := make(map[int64]map[int]inverter.DayRecord)
	for i := range records {
		for _, d := range records[i].DayData {
			if d.IsEmpty() {
				continue
			}
			bucket, ok := groups[d.Timestamp]
			if !ok {
				bucket = make(map[int]inverter.DayRecord, len(records))
				groups[d.Timestamp] = bucket
			}
			bucket[i] = d
		}
	}

	keys := make([]int64, 0, len(groups))
	for ts, bucket := range groups {
		if len(bucket) == len(records) {
			keys = append(keys, ts)
		}
	}
	slices.Sort(keys)

	out := make([]inverter.DayRecord, 0, len(keys))
	for _, ts := range keys {
		out = append(out, fold(groups[ts]))
	}
	return out
}

// fold sums one complete group.
func fold(entries map[int]inverter.DayRecord) inverter.DayRecord {
	var sum inverter.DayRecord
	for _, d := range entries {
		sum.Timestamp = max(sum.Timestamp, d.Timestamp)
		sum.Power += d.Power
		sum.Energy += d.Energy
	}
	return sum
}

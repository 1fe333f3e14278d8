package aggregate

import "github.com/nerrad567/solar-export/internal/inverter"

// NetDeviceType is the device type of the plant total record.
const NetDeviceType = "Net"

// PlantTotal builds the plant-level record for records.
//
// The result is named after the plant, typed NetDeviceType and has
// serial 0. Max-policy fields take the largest value across records.
// Efficiency is AC out over DC in, 100 * ΣPacTotal / ΣPdcTotal, or 0
// when no DC power is reported. DayData is not carried over.
func PlantTotal(plantName string, records []inverter.Record) inverter.Record {
	total := inverter.Record{
		Name: inverter.ClampName(plantName),
		Type: NetDeviceType,
	}

	// Max fields start from the first record so all-negative readings
	// (sub-zero temperatures) keep their true maximum.
	if len(records) > 0 {
		first := &records[0]
		total.Udc1, total.Udc2 = first.Udc1, first.Udc2
		total.Uac1, total.Uac2, total.Uac3 = first.Uac1, first.Uac2, first.Uac3
		total.GridFreq = first.GridFreq
		total.OperationTime = first.OperationTime
		total.FeedInTime = first.FeedInTime
		total.BTSignal = first.BTSignal
		total.Temperature = first.Temperature
		total.DeviceTime = first.DeviceTime
	}

	for i := range records {
		r := &records[i]

		// Additive
		total.Pdc1 += r.Pdc1
		total.Pdc2 += r.Pdc2
		total.Idc1 += r.Idc1
		total.Idc2 += r.Idc2
		total.Pac1 += r.Pac1
		total.Pac2 += r.Pac2
		total.Pac3 += r.Pac3
		total.Iac1 += r.Iac1
		total.Iac2 += r.Iac2
		total.Iac3 += r.Iac3
		total.EToday += r.EToday
		total.ETotal += r.ETotal
		total.PdcTotal += r.PdcTotal
		total.PacTotal += r.PacTotal

		// Maximum
		total.Udc1 = max(total.Udc1, r.Udc1)
		total.Udc2 = max(total.Udc2, r.Udc2)
		total.Uac1 = max(total.Uac1, r.Uac1)
		total.Uac2 = max(total.Uac2, r.Uac2)
		total.Uac3 = max(total.Uac3, r.Uac3)
		total.GridFreq = max(total.GridFreq, r.GridFreq)
		total.OperationTime = max(total.OperationTime, r.OperationTime)
		total.FeedInTime = max(total.FeedInTime, r.FeedInTime)
		total.BTSignal = max(total.BTSignal, r.BTSignal)
		total.Temperature = max(total.Temperature, r.Temperature)
		total.DeviceTime = max(total.DeviceTime, r.DeviceTime)
	}

	if total.PdcTotal != 0 {
		total.Efficiency = 100 * float64(total.PacTotal) / float64(total.PdcTotal)
	}

	return total
}

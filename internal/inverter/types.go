package inverter

// Record is one inverter's decoded readings for a single polling cycle.
//
// Units follow the inverter's native resolution:
//   - power in W, current in mA, voltage in cV (1/100 V)
//   - energy in Wh, grid frequency in cHz, temperature in c°C
//   - operation and feed-in time in seconds
type Record struct {
	// Identity
	Name   string `yaml:"name" json:"name"`
	Type   string `yaml:"type" json:"type"`
	Serial uint32 `yaml:"serial" json:"serial"`

	// DC side, per MPP tracker
	Pdc1 int64 `yaml:"pdc1" json:"pdc1"`
	Pdc2 int64 `yaml:"pdc2" json:"pdc2"`
	Idc1 int64 `yaml:"idc1" json:"idc1"`
	Idc2 int64 `yaml:"idc2" json:"idc2"`
	Udc1 int64 `yaml:"udc1" json:"udc1"`
	Udc2 int64 `yaml:"udc2" json:"udc2"`

	// AC side, per phase
	Pac1 int64 `yaml:"pac1" json:"pac1"`
	Pac2 int64 `yaml:"pac2" json:"pac2"`
	Pac3 int64 `yaml:"pac3" json:"pac3"`
	Iac1 int64 `yaml:"iac1" json:"iac1"`
	Iac2 int64 `yaml:"iac2" json:"iac2"`
	Iac3 int64 `yaml:"iac3" json:"iac3"`
	Uac1 int64 `yaml:"uac1" json:"uac1"`
	Uac2 int64 `yaml:"uac2" json:"uac2"`
	Uac3 int64 `yaml:"uac3" json:"uac3"`

	// Energy counters
	EToday int64 `yaml:"etoday" json:"etoday"`
	ETotal int64 `yaml:"etotal" json:"etotal"`

	// Grid and device state
	GridFreq      int64   `yaml:"grid_freq" json:"grid_freq"`
	OperationTime int64   `yaml:"operation_time" json:"operation_time"`
	FeedInTime    int64   `yaml:"feed_in_time" json:"feed_in_time"`
	BTSignal      float64 `yaml:"bt_signal" json:"bt_signal"`
	Temperature   int64   `yaml:"temperature" json:"temperature"`

	// Computed totals
	PdcTotal   int64   `yaml:"pdc_total" json:"pdc_total"`
	PacTotal   int64   `yaml:"pac_total" json:"pac_total"`
	Efficiency float64 `yaml:"efficiency" json:"efficiency"`

	// DeviceTime is the inverter clock in Unix seconds.
	DeviceTime int64 `yaml:"device_time" json:"device_time"`

	// DayData is the inverter's daily history buffer.
	// Entries with a zero timestamp have not been filled yet.
	DayData []DayRecord `yaml:"day_data" json:"day_data,omitempty"`
}

// DayRecord is one sample from an inverter's daily history.
type DayRecord struct {
	// Timestamp in Unix seconds; zero means "no data".
	Timestamp int64 `yaml:"timestamp" json:"timestamp"`

	// Power is the average power over the interval in W.
	Power int64 `yaml:"power" json:"power"`

	// Energy is the cumulative energy counter in Wh.
	Energy int64 `yaml:"energy" json:"energy"`
}

// IsEmpty reports whether the entry is an unfilled slot.
func (d DayRecord) IsEmpty() bool {
	return d.Timestamp == 0
}

// HasDayData reports whether the record carries at least one filled day entry.
func (r *Record) HasDayData() bool {
	for _, d := range r.DayData {
		if !d.IsEmpty() {
			return true
		}
	}
	return false
}

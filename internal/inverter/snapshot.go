package inverter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Snapshot is the on-disk hand-off format written by a poller:
//
//	inverters:
//	  - name: "SB 3000"
//	    type: "SB 3000HF-30"
//	    serial: 2130012345
//	    pac1: 1530
//	    day_data:
//	      - {timestamp: 1700000000, power: 1200, energy: 4600000}
type Snapshot struct {
	Inverters []Record `yaml:"inverters"`
}

// LoadSnapshot reads and validates a YAML snapshot of decoded inverter records.
//
// Parameters:
//   - path: Snapshot file path
//
// Returns:
//   - []Record: Records in file order (the first one supplies the device clock)
//   - error: If the file cannot be read or decoded, is empty, or a record is invalid
func LoadSnapshot(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return ParseSnapshot(data)
}

// ParseSnapshot decodes and validates snapshot bytes.
func ParseSnapshot(data []byte) ([]Record, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	if len(snap.Inverters) == 0 {
		return nil, ErrNoInverters
	}

	for i := range snap.Inverters {
		if err := snap.Inverters[i].Validate(); err != nil {
			return nil, fmt.Errorf("inverter %d: %w", i, err)
		}
	}

	return snap.Inverters, nil
}

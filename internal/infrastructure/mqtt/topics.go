package mqtt

import (
	"fmt"
	"strconv"
)

// DefaultTopicPrefix is used when no prefix is configured.
const DefaultTopicPrefix = "solar"

// Topics builds the solar-export topic hierarchy under Prefix:
//
//	{prefix}/{serial}   retained spot document of one inverter
//	{prefix}/plant      retained spot document of the plant total
//	{prefix}/status     online/offline status with LWT
type Topics struct {
	Prefix string
}

func (t Topics) prefix() string {
	if t.Prefix == "" {
		return DefaultTopicPrefix
	}
	return t.Prefix
}

// Inverter returns the spot topic for one inverter.
//
// Example: solar/2130012345
func (t Topics) Inverter(serial uint32) string {
	return t.prefix() + "/" + strconv.FormatUint(uint64(serial), 10)
}

// Plant returns the spot topic for the plant total.
//
// Example: solar/plant
func (t Topics) Plant() string {
	return fmt.Sprintf("%s/plant", t.prefix())
}

// Status returns the exporter status topic.
//
// Example: solar/status
func (t Topics) Status() string {
	return fmt.Sprintf("%s/status", t.prefix())
}

// All returns a pattern matching every solar-export topic.
//
// Pattern: solar/#
func (t Topics) All() string {
	return t.prefix() + "/#"
}

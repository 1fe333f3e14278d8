package publish

import (
	"errors"
	"fmt"
	"time"

	"github.com/nerrad567/solar-export/internal/aggregate"
	"github.com/nerrad567/solar-export/internal/infrastructure/mqtt"
	"github.com/nerrad567/solar-export/internal/inverter"
	"github.com/nerrad567/solar-export/internal/lineprotocol"
)

// Client is the subset of mqtt.Client used by the Publisher.
type Client interface {
	PublishJSON(topic string, v any) error
	Topics() mqtt.Topics
}

// Logger defines the logging interface used by the Publisher.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// SpotDocument is the JSON published for one record.
type SpotDocument struct {
	Name      string             `json:"name"`
	Type      string             `json:"type"`
	Serial    uint32             `json:"serial"`
	Timestamp time.Time          `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
}

// NewSpotDocument builds the document for r at t.
func NewSpotDocument(r *inverter.Record, t time.Time) SpotDocument {
	values := lineprotocol.SpotValues(r)
	doc := SpotDocument{
		Name:      r.Name,
		Type:      r.Type,
		Serial:    r.Serial,
		Timestamp: t.UTC(),
		Values:    make(map[string]float64, len(values)),
	}
	for _, v := range values {
		doc.Values[v.Name] = v.Value
	}
	return doc
}

// Publisher sends spot documents through an MQTT client.
type Publisher struct {
	client    Client
	plantName string
	logger    Logger
}

// New creates a Publisher. A nil logger discards output.
func New(client Client, plantName string, logger Logger) *Publisher {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Publisher{client: client, plantName: plantName, logger: logger}
}

// PublishSpot publishes every record and the plant total.
//
// All documents are attempted even when one fails; the failures are
// joined into the returned error.
//
// Returns:
//   - int: Number of documents published
//   - error: Joined publish failures, or nil
func (p *Publisher) PublishSpot(records []inverter.Record, t time.Time) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	topics := p.client.Topics()
	var (
		sent int
		errs []error
	)

	publish := func(topic string, r *inverter.Record) {
		if err := p.client.PublishJSON(topic, NewSpotDocument(r, t)); err != nil {
			p.logger.Warn("spot publish failed", "topic", topic, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", topic, err))
			return
		}
		sent++
	}

	for i := range records {
		publish(topics.Inverter(records[i].Serial), &records[i])
	}
	total := aggregate.PlantTotal(p.plantName, records)
	publish(topics.Plant(), &total)

	p.logger.Debug("spot documents published", "count", sent)
	return sent, errors.Join(errs...)
}

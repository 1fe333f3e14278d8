package export

import (
	"context"
	"fmt"
	"time"

	"github.com/nerrad567/solar-export/internal/aggregate"
	"github.com/nerrad567/solar-export/internal/infrastructure/config"
	"github.com/nerrad567/solar-export/internal/infrastructure/tsdb"
	"github.com/nerrad567/solar-export/internal/inverter"
	"github.com/nerrad567/solar-export/internal/lineprotocol"
)

// Pipeline names.
const (
	PipelineSpot = "spot"
	PipelineDay  = "day"
)

// Spot time sources.
const (
	SpotTimeDevice = config.SpotTimeDevice
	SpotTimeWall   = config.SpotTimeWall
)

// Transport delivers one line-protocol payload.
// A nil error means the server accepted the write.
type Transport interface {
	Post(ctx context.Context, endpoint, body string, auth tsdb.Credential) error
}

// Logger defines the logging interface used by the Exporter.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Options configures an Exporter.
type Options struct {
	// Transport is required.
	Transport Transport

	// Target is the write destination.
	Target Target

	// PlantName names the "Net" total record.
	PlantName string

	// SpotTimeSource is SpotTimeDevice (default) or SpotTimeWall.
	SpotTimeSource string

	// Clock defaults to time.Now.
	Clock func() time.Time

	// Logger defaults to a no-op logger.
	Logger Logger
}

// Result describes one pipeline run.
type Result struct {
	Pipeline string
	Lines    int
	Bytes    int
	Skipped  bool
}

// Exporter encodes records and posts them through a Transport.
type Exporter struct {
	transport  Transport
	endpoint   string
	credential tsdb.Credential
	encoder    lineprotocol.Encoder
	plantName  string
	timeSource string
	clock      func() time.Time
	logger     Logger
}

// New validates opts and builds an Exporter.
//
// Returns:
//   - *Exporter: Exporter ready for use
//   - error: ErrNoTransport, ErrInvalidTarget or ErrInvalidTimeSource
func New(opts Options) (*Exporter, error) {
	if opts.Transport == nil {
		return nil, ErrNoTransport
	}

	endpoint, err := WriteURL(opts.Target)
	if err != nil {
		return nil, err
	}
	precision, _ := opts.Target.precision() // validated by WriteURL

	timeSource := opts.SpotTimeSource
	switch timeSource {
	case "":
		timeSource = SpotTimeDevice
	case SpotTimeDevice, SpotTimeWall:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeSource, timeSource)
	}

	e := &Exporter{
		transport:  opts.Transport,
		endpoint:   endpoint,
		credential: opts.Target.Credential(),
		encoder:    lineprotocol.NewEncoder(precision),
		plantName:  opts.PlantName,
		timeSource: timeSource,
		clock:      opts.Clock,
		logger:     opts.Logger,
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.logger == nil {
		e.logger = noopLogger{}
	}

	return e, nil
}

// ExportSpot posts one spot line per record followed by the plant total.
//
// An empty records slice is a skipped no-op.
//
// Parameters:
//   - ctx: Context for cancellation
//   - records: Current readings, first record supplies the device clock
//
// Returns:
//   - Result: What was sent
//   - error: wrapping ErrTransport if the write failed
func (e *Exporter) ExportSpot(ctx context.Context, records []inverter.Record) (Result, error) {
	res := Result{Pipeline: PipelineSpot}
	if len(records) == 0 {
		e.logger.Debug("spot export skipped", "reason", "no records")
		res.Skipped = true
		return res, nil
	}

	ts := e.SpotTime(records)
	total := aggregate.PlantTotal(e.plantName, records)

	lines := make([]string, 0, len(records)+1)
	for i := range records {
		lines = append(lines, e.encoder.Spot(&records[i], ts))
	}
	lines = append(lines, e.encoder.Spot(&total, ts))

	return e.send(ctx, res, lines)
}

// ExportDay posts one day line per complete timestamp group.
//
// Nothing is sent when there are no records, when the first inverter has
// no filled day entry, or when no group is complete.
//
// Parameters:
//   - ctx: Context for cancellation
//   - records: Records carrying day histories
//
// Returns:
//   - Result: What was sent
//   - error: wrapping ErrTransport if the write failed
func (e *Exporter) ExportDay(ctx context.Context, records []inverter.Record) (Result, error) {
	res := Result{Pipeline: PipelineDay}
	if len(records) == 0 || !records[0].HasDayData() {
		e.logger.Debug("day export skipped", "reason", "no day data")
		res.Skipped = true
		return res, nil
	}

	groups := aggregate.GroupDays(records)
	if len(groups) == 0 {
		e.logger.Debug("day export skipped", "reason", "no complete group", "inverters", len(records))
		res.Skipped = true
		return res, nil
	}

	lines := make([]string, 0, len(groups))
	for _, d := range groups {
		lines = append(lines, e.encoder.Day(d))
	}

	return e.send(ctx, res, lines)
}

// SpotTime picks the timestamp shared by every spot line of records:
// the first inverter's clock for SpotTimeDevice, falling back to the
// wall clock when that inverter reports none.
func (e *Exporter) SpotTime(records []inverter.Record) time.Time {
	if e.timeSource == SpotTimeDevice && len(records) > 0 {
		if dt := records[0].DeviceTime; dt > 0 {
			return time.Unix(dt, 0)
		}
		e.logger.Warn("first inverter has no device time, using wall clock", "device", records[0].Name)
	}
	return e.clock()
}

func (e *Exporter) send(ctx context.Context, res Result, lines []string) (Result, error) {
	body := lineprotocol.Join(lines)
	res.Lines = len(lines)
	res.Bytes = len(body)

	e.logger.Debug("posting line protocol", "pipeline", res.Pipeline, "lines", res.Lines, "bytes", res.Bytes)

	if err := e.transport.Post(ctx, e.endpoint, body, e.credential); err != nil {
		e.logger.Error("export failed", "pipeline", res.Pipeline, "error", err)
		return res, fmt.Errorf("%w: %s: %w", ErrTransport, res.Pipeline, err)
	}

	e.logger.Info("export sent", "pipeline", res.Pipeline, "lines", res.Lines, "bytes", res.Bytes)
	return res, nil
}

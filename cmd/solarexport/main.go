// solar-export - inverter telemetry exporter
//
// Reads a snapshot of decoded inverter records, writes spot readings and
// daily totals to InfluxDB as line protocol, mirrors spot readings to MQTT,
// and journals every run in SQLite. It is meant to be started by a
// scheduler after each polling cycle and exits when done.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/nerrad567/solar-export/migrations"

	"github.com/google/uuid"

	"github.com/nerrad567/solar-export/internal/export"
	"github.com/nerrad567/solar-export/internal/infrastructure/config"
	"github.com/nerrad567/solar-export/internal/infrastructure/database"
	"github.com/nerrad567/solar-export/internal/infrastructure/influxdb"
	"github.com/nerrad567/solar-export/internal/infrastructure/logging"
	"github.com/nerrad567/solar-export/internal/infrastructure/mqtt"
	"github.com/nerrad567/solar-export/internal/infrastructure/tsdb"
	"github.com/nerrad567/solar-export/internal/inverter"
	"github.com/nerrad567/solar-export/internal/journal"
	"github.com/nerrad567/solar-export/internal/publish"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// healthTimeout bounds the pre-export connectivity probe.
const healthTimeout = 5 * time.Second

// errExportFailed is returned by run when any enabled pipeline failed.
var errExportFailed = errors.New("export failed")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// transport is what the exporter needs plus lifecycle hooks.
type transport interface {
	export.Transport
	Close() error
}

// run is the actual application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil when every enabled pipeline was sent or skipped
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting solar-export",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log = logging.New(cfg.Logging, version)
	log.Info("configuration loaded", "path", configPath, "level", cfg.Logging.Level)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	applied, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	log.Debug("database ready", "path", db.Path(), "migrations_applied", applied)
	runs := journal.NewSQLiteRepository(db.DB)

	records, err := inverter.LoadSnapshot(cfg.Input.Snapshot)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	log.Info("snapshot loaded", "path", cfg.Input.Snapshot, "inverters", len(records))

	var exporter *export.Exporter
	if cfg.InfluxDB.Enabled {
		tr, closeFn, err := newTransport(ctx, cfg.InfluxDB, log)
		if err != nil {
			return fmt.Errorf("creating transport: %w", err)
		}
		defer closeFn()

		exporter, err = export.New(export.Options{
			Transport:      tr,
			Target:         export.TargetFromConfig(cfg.InfluxDB),
			PlantName:      cfg.Plant.Name,
			SpotTimeSource: cfg.Plant.SpotTimeSource,
			Logger:         log.With("component", "export"),
		})
		if err != nil {
			return fmt.Errorf("creating exporter: %w", err)
		}
	} else {
		log.Warn("influxdb export disabled")
	}

	publisher := connectPublisher(cfg, log)
	if publisher != nil {
		defer publisher.close()
	}

	runID := journal.NewRunID()
	var failures []error

	if cfg.Input.ExportSpot {
		if err := runPipeline(ctx, runs, runID, export.PipelineSpot, exporter, records, log); err != nil {
			failures = append(failures, err)
		}
		if publisher != nil {
			ts := time.Now()
			if exporter != nil {
				ts = exporter.SpotTime(records)
			}
			if _, err := publisher.PublishSpot(records, ts); err != nil {
				log.Warn("mqtt publish incomplete", "error", err)
			}
		}
	}

	if cfg.Input.ExportDay {
		if err := runPipeline(ctx, runs, runID, export.PipelineDay, exporter, records, log); err != nil {
			failures = append(failures, err)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("%w: %w", errExportFailed, errors.Join(failures...))
	}

	log.Info("solar-export finished", "run_id", runID)
	return nil
}

// runPipeline exports one pipeline and journals the outcome.
// A journal write failure is logged but does not fail the run.
func runPipeline(ctx context.Context, runs journal.Repository, runID uuid.UUID, pipeline string,
	exporter *export.Exporter, records []inverter.Record, log *logging.Logger,
) error {
	previousSend(ctx, runs, pipeline, log)

	entry := &journal.Entry{RunID: runID, Pipeline: pipeline, Status: journal.StatusSkipped}

	var exportErr error
	if exporter != nil {
		var res export.Result
		switch pipeline {
		case export.PipelineSpot:
			res, exportErr = exporter.ExportSpot(ctx, records)
		case export.PipelineDay:
			res, exportErr = exporter.ExportDay(ctx, records)
		}

		entry.Lines = res.Lines
		entry.Bytes = res.Bytes
		switch {
		case exportErr != nil:
			entry.Status = journal.StatusFailed
			entry.Error = exportErr.Error()
		case !res.Skipped:
			entry.Status = journal.StatusSent
		}
	}

	if err := runs.Record(ctx, entry); err != nil {
		log.Error("failed to journal export", "pipeline", pipeline, "error", err)
	}
	return exportErr
}

// previousSend logs when pipeline last reached the server. Day histories
// are re-sent on every run, so a recent entry here explains duplicate
// points on the server side.
func previousSend(ctx context.Context, runs journal.Repository, pipeline string, log *logging.Logger) *journal.Entry {
	last, err := runs.LastSent(ctx, pipeline)
	switch {
	case errors.Is(err, journal.ErrNotFound):
		log.Debug("no previous export", "pipeline", pipeline)
		return nil
	case err != nil:
		log.Warn("failed to read journal", "pipeline", pipeline, "error", err)
		return nil
	}

	log.Debug("previous export",
		"pipeline", pipeline,
		"run_id", last.RunID,
		"age", time.Since(last.CreatedAt).Round(time.Second),
	)
	return last
}

// newTransport builds the configured transport and probes the server.
// An unhealthy server is only logged; the export itself reports the failure.
func newTransport(ctx context.Context, cfg config.InfluxDBConfig, log *logging.Logger) (transport, func(), error) {
	healthCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	var (
		tr        transport
		healthErr error
	)
	switch cfg.Transport {
	case config.TransportClient:
		client, err := influxdb.New(cfg)
		if err != nil {
			return nil, nil, err
		}
		healthErr = client.HealthCheck(healthCtx)
		tr = client
	default:
		client, err := tsdb.New(cfg)
		if err != nil {
			return nil, nil, err
		}
		healthErr = client.HealthCheck(healthCtx, export.TargetFromConfig(cfg).BaseURL())
		tr = client
	}

	if healthErr != nil {
		log.Warn("influxdb health check failed", "transport", cfg.Transport, "error", healthErr)
	} else {
		log.Debug("influxdb reachable", "transport", cfg.Transport, "mode", cfg.Mode)
	}

	closeFn := func() {
		if err := tr.Close(); err != nil {
			log.Error("error closing transport", "error", err)
		}
	}
	return tr, closeFn, nil
}

// mqttPublisher pairs a Publisher with the client it owns.
type mqttPublisher struct {
	*publish.Publisher
	client *mqtt.Client
	log    *logging.Logger
}

func (p *mqttPublisher) close() {
	if err := p.client.Close(); err != nil {
		p.log.Error("error closing MQTT", "error", err)
	}
}

// connectPublisher connects to MQTT when enabled. MQTT is a secondary
// output, so a connection failure is logged and publishing is skipped.
func connectPublisher(cfg *config.Config, log *logging.Logger) *mqttPublisher {
	if !cfg.MQTT.Enabled {
		return nil
	}

	client, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		log.Warn("mqtt unavailable, skipping publish", "error", err)
		return nil
	}
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	return &mqttPublisher{
		Publisher: publish.New(client, cfg.Plant.Name, log.With("component", "publish")),
		client:    client,
		log:       log,
	}
}

// getConfigPath returns the configuration file path.
// Checks SOLAREXPORT_CONFIG environment variable first, then uses default.
func getConfigPath() string {
	if path := os.Getenv("SOLAREXPORT_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

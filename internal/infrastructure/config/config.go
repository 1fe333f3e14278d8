package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Spot time sources.
const (
	// SpotTimeDevice stamps spot lines with the first inverter's clock.
	SpotTimeDevice = "device"

	// SpotTimeWall stamps spot lines with the local wall clock.
	SpotTimeWall = "wall"
)

// InfluxDB API modes.
const (
	// ModeLegacy is the 1.x /write API with u/p/db query parameters.
	ModeLegacy = "legacy"

	// ModeV2 is the 2.x /api/v2/write API with token, org and bucket.
	ModeV2 = "v2"
)

// Transport implementations.
const (
	// TransportHTTP posts line protocol with the built-in HTTP client.
	TransportHTTP = "http"

	// TransportClient writes through the official InfluxDB client library.
	TransportClient = "client"
)

// Config is the root configuration structure for solar-export.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Plant    PlantConfig    `yaml:"plant"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Database DatabaseConfig `yaml:"database"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	Logging  LoggingConfig  `yaml:"logging"`
	Input    InputConfig    `yaml:"input"`
}

// PlantConfig describes the plant as a whole.
type PlantConfig struct {
	// Name is written as DeviceName of the aggregated "Net" record.
	Name string `yaml:"name"`

	// SpotTimeSource selects the spot timestamp: "device" or "wall".
	SpotTimeSource string `yaml:"spot_time_source"`
}

// InfluxDBConfig contains the export target.
//
// Legacy mode uses Host/Port (or URL), Database, Username and Password.
// V2 mode uses URL, Token, Org and Bucket.
type InfluxDBConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Transport string `yaml:"transport"`
	Mode      string `yaml:"mode"`
	URL       string `yaml:"url"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Database  string `yaml:"database"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Token     string `yaml:"token"`
	Org       string `yaml:"org"`
	Bucket    string `yaml:"bucket"`
	Precision string `yaml:"precision"`

	// Timeout is the per-request timeout in seconds.
	Timeout int `yaml:"timeout"`
}

// DatabaseConfig contains SQLite settings for the export journal.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled     bool                `yaml:"enabled"`
	Broker      MQTTBrokerConfig    `yaml:"broker"`
	Auth        MQTTAuthConfig      `yaml:"auth"`
	QoS         int                 `yaml:"qos"`
	TopicPrefix string              `yaml:"topic_prefix"`

	// Timeout bounds the connect and each publish, in seconds.
	Timeout int `yaml:"timeout"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// InputConfig describes where decoded inverter records come from
// and which pipelines run for them.
type InputConfig struct {
	Snapshot   string `yaml:"snapshot"`
	ExportSpot bool   `yaml:"export_spot"`
	ExportDay  bool   `yaml:"export_day"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: SOLAREXPORT_SECTION_KEY
// For example: SOLAREXPORT_INFLUXDB_TOKEN, SOLAREXPORT_DATABASE_PATH
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Plant: PlantConfig{
			Name:           "MyPlant",
			SpotTimeSource: SpotTimeDevice,
		},
		InfluxDB: InfluxDBConfig{
			Enabled:   true,
			Transport: TransportHTTP,
			Mode:      ModeLegacy,
			Host:      "localhost",
			Port:      8086,
			Database:  "solar",
			Precision: "s",
			Timeout:   10,
		},
		Database: DatabaseConfig{
			Path:        "./data/solarexport.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "solarexport",
			},
			QoS:         1,
			TopicPrefix: "solar",
			Timeout:     5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Input: InputConfig{
			Snapshot:   "./data/snapshot.yaml",
			ExportSpot: true,
			ExportDay:  true,
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: SOLAREXPORT_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Plant
	if v := os.Getenv("SOLAREXPORT_PLANT_NAME"); v != "" {
		cfg.Plant.Name = v
	}

	// InfluxDB
	if v := os.Getenv("SOLAREXPORT_INFLUXDB_URL"); v != "" {
		cfg.InfluxDB.URL = v
	}
	if v := os.Getenv("SOLAREXPORT_INFLUXDB_HOST"); v != "" {
		cfg.InfluxDB.Host = v
	}
	if v := os.Getenv("SOLAREXPORT_INFLUXDB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.InfluxDB.Port = port
		}
	}
	if v := os.Getenv("SOLAREXPORT_INFLUXDB_USERNAME"); v != "" {
		cfg.InfluxDB.Username = v
	}
	if v := os.Getenv("SOLAREXPORT_INFLUXDB_PASSWORD"); v != "" {
		cfg.InfluxDB.Password = v
	}
	if v := os.Getenv("SOLAREXPORT_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Database
	if v := os.Getenv("SOLAREXPORT_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// MQTT
	if v := os.Getenv("SOLAREXPORT_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("SOLAREXPORT_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("SOLAREXPORT_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// Input
	if v := os.Getenv("SOLAREXPORT_INPUT_SNAPSHOT"); v != "" {
		cfg.Input.Snapshot = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of every validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	switch c.Plant.SpotTimeSource {
	case SpotTimeDevice, SpotTimeWall:
	default:
		errs = append(errs, "plant.spot_time_source must be \"device\" or \"wall\"")
	}

	if c.InfluxDB.Enabled {
		errs = append(errs, c.InfluxDB.validate()...)
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.MQTT.Enabled {
		if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
			errs = append(errs, "mqtt.qos must be 0, 1, or 2")
		}
		if c.MQTT.TopicPrefix == "" {
			errs = append(errs, "mqtt.topic_prefix is required")
		}
	}

	if c.Input.Snapshot == "" {
		errs = append(errs, "input.snapshot is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

func (c InfluxDBConfig) validate() []string {
	var errs []string

	switch c.Transport {
	case TransportHTTP, TransportClient:
	default:
		errs = append(errs, "influxdb.transport must be \"http\" or \"client\"")
	}

	switch c.Precision {
	case "s", "ms", "us", "ns":
	default:
		errs = append(errs, "influxdb.precision must be one of s, ms, us, ns")
	}

	switch c.Mode {
	case ModeLegacy:
		if c.URL == "" {
			if c.Host == "" {
				errs = append(errs, "influxdb.host or influxdb.url is required")
			}
			if c.Port < 1 || c.Port > 65535 {
				errs = append(errs, "influxdb.port must be between 1 and 65535")
			}
		}
		if c.Database == "" {
			errs = append(errs, "influxdb.database is required in legacy mode")
		}
	case ModeV2:
		if c.URL == "" {
			errs = append(errs, "influxdb.url is required in v2 mode")
		}
		if c.Token == "" {
			errs = append(errs, "influxdb.token is required in v2 mode (set SOLAREXPORT_INFLUXDB_TOKEN)")
		}
		if c.Org == "" {
			errs = append(errs, "influxdb.org is required in v2 mode")
		}
		if c.Bucket == "" {
			errs = append(errs, "influxdb.bucket is required in v2 mode")
		}
	default:
		errs = append(errs, "influxdb.mode must be \"legacy\" or \"v2\"")
	}

	return errs
}

// GetTimeout returns the MQTT connect and publish timeout as a Duration.
func (c MQTTConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// GetTimeout returns the InfluxDB request timeout as a Duration.
func (c InfluxDBConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

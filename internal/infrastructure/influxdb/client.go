package influxdb

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/nerrad567/solar-export/internal/infrastructure/config"
	"github.com/nerrad567/solar-export/internal/infrastructure/tsdb"
	"github.com/nerrad567/solar-export/internal/lineprotocol"
)

// Default timeouts for InfluxDB operations.
const (
	defaultPingTimeout    = 5 * time.Second
	defaultRequestTimeout = 10
)

// Client writes line protocol through the official influxdb-client-go library.
//
// It is an alternative export transport to tsdb.Client. The server, org,
// bucket and precision are fixed at construction, so the endpoint and
// credential handed to Post are ignored; they only exist to satisfy the
// exporter's transport contract.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
//   - Writes are blocking; each Post is one HTTP round trip.
type Client struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	cfg      config.InfluxDBConfig

	// connected tracks whether Close has been called.
	connected bool
	mu        sync.RWMutex
}

// New creates a client for the configured InfluxDB server.
//
// Legacy mode uses the 1.x compatibility convention of the 2.x client:
// the token is "username:password", the org is empty and the bucket is the
// database name. V2 mode uses token, org and bucket as configured.
//
// No network traffic happens here; call HealthCheck to verify the server.
//
// Parameters:
//   - cfg: InfluxDB configuration from config.yaml
//
// Returns:
//   - *Client: Client ready for use
//   - error: ErrDisabled or ErrInvalidConfig
func New(cfg config.InfluxDBConfig) (*Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	precision, err := lineprotocol.ParsePrecision(cfg.Precision)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	serverURL, token, org, bucket, err := resolveTarget(cfg)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	// #nosec G115 -- timeout validated above to be positive
	client := influxdb2.NewClientWithOptions(
		serverURL,
		token,
		influxdb2.DefaultOptions().
			SetPrecision(precision.Duration()).
			SetHTTPRequestTimeout(uint(timeout)),
	)

	return &Client{
		client:    client,
		writeAPI:  client.WriteAPIBlocking(org, bucket),
		cfg:       cfg,
		connected: true,
	}, nil
}

// resolveTarget maps the configured mode onto client-library arguments.
func resolveTarget(cfg config.InfluxDBConfig) (serverURL, token, org, bucket string, err error) {
	switch cfg.Mode {
	case config.ModeLegacy:
		serverURL = strings.TrimRight(cfg.URL, "/")
		if serverURL == "" {
			serverURL = "http://" + net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
		}
		if cfg.Username != "" {
			token = cfg.Username + ":" + cfg.Password
		}
		return serverURL, token, "", cfg.Database, nil
	case config.ModeV2:
		return strings.TrimRight(cfg.URL, "/"), cfg.Token, cfg.Org, cfg.Bucket, nil
	default:
		return "", "", "", "", fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, cfg.Mode)
	}
}

// Post writes a newline-separated line-protocol payload.
//
// Parameters:
//   - ctx: Context for cancellation
//   - endpoint: Ignored; the client writes to its configured server
//   - body: Newline-separated line protocol
//   - auth: Ignored; the client authenticates with its configured token
//
// Returns:
//   - error: nil on success, wrapping ErrWriteFailed otherwise
func (c *Client) Post(ctx context.Context, _ string, body string, _ tsdb.Credential) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	lines := strings.Split(body, "\n")
	if err := c.writeAPI.WriteRecord(ctx, lines...); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// ServerURL returns the server the client writes to.
func (c *Client) ServerURL() string {
	return c.client.ServerURL()
}

// Close shuts down the underlying client and its idle connections.
//
// Returns:
//   - error: nil (InfluxDB client Close doesn't return errors)
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}

	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()

	c.client.Close()

	return nil
}

// HealthCheck verifies the InfluxDB server answers a ping.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, error describing the issue otherwise
func (c *Client) HealthCheck(ctx context.Context) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	checkCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	healthy, err := c.client.Ping(checkCtx)
	if err != nil {
		return fmt.Errorf("%w: ping failed: %w", ErrConnectionFailed, err)
	}
	if !healthy {
		return fmt.Errorf("%w: server not healthy", ErrConnectionFailed)
	}

	return nil
}

// IsConnected reports whether the client is still open.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

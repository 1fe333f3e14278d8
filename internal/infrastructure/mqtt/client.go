package mqtt

import (
	"context"
	"fmt"
	"sync"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/solar-export/internal/infrastructure/config"
)

// Client wraps paho.mqtt.golang for publishing export results.
//
// It provides connection management, retained publishing and
// online/offline status with a Last Will. A lost connection is not
// re-established; later publishes fail with ErrNotConnected.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	client  pahomqtt.Client
	options *pahomqtt.ClientOptions
	cfg     config.MQTTConfig
	topics  Topics

	// connected tracks current connection state.
	connected bool
	connMu    sync.RWMutex
}

// Connect establishes a connection to the MQTT broker.
//
// It performs the following setup:
//  1. Builds connection options from config (broker URL, auth, TLS)
//  2. Configures Last Will and Testament (LWT) on {prefix}/status
//  3. Attempts a single connection with timeout
//  4. Publishes online status to {prefix}/status
//
// Parameters:
//   - cfg: MQTT configuration from config.yaml
//
// Returns:
//   - *Client: Connected client ready for use
//   - error: ErrDisabled, or ErrConnectionFailed if the broker is unreachable
func Connect(cfg config.MQTTConfig) (*Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	topics := Topics{Prefix: cfg.TopicPrefix}
	opts := buildClientOptions(cfg)
	configureLWT(opts, topics, cfg.Broker.ClientID)

	c := &Client{
		cfg:     cfg,
		options: opts,
		topics:  topics,
	}

	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		c.handleConnect()
	})

	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, _ error) {
		c.handleDisconnect()
	})

	// Create and connect
	c.client = pahomqtt.NewClient(opts)
	wait := timeout(cfg)
	token := c.client.Connect()
	if !token.WaitTimeout(wait) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, wait)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// The OnConnectHandler runs asynchronously and may not have executed
	// yet, so mark the client connected here as well.
	c.connMu.Lock()
	c.connected = true
	c.connMu.Unlock()

	return c, nil
}

// handleConnect is called when the connection is established.
func (c *Client) handleConnect() {
	c.connMu.Lock()
	c.connected = true
	c.connMu.Unlock()

	c.client.Publish(c.topics.Status(), byte(c.cfg.QoS), true, statusPayload("online", c.cfg.Broker.ClientID, ""))
}

// handleDisconnect is called when the connection is lost.
func (c *Client) handleDisconnect() {
	c.connMu.Lock()
	c.connected = false
	c.connMu.Unlock()
}

// Close gracefully disconnects from the MQTT broker.
//
// It performs:
//  1. Publishes offline status with reason run_finished (the LWT says unexpected_disconnect)
//  2. Waits for pending publish operations
//  3. Disconnects from broker
//
// Returns:
//   - error: nil (connection already closed is not an error)
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}

	if c.IsConnected() {
		token := c.client.Publish(c.topics.Status(), byte(c.cfg.QoS), true, statusPayload("offline", c.cfg.Broker.ClientID, reasonFinished))
		token.WaitTimeout(timeout(c.cfg))
	}

	// Disconnect with quiesce period for pending operations
	c.client.Disconnect(disconnectQuiesce)

	c.connMu.Lock()
	c.connected = false
	c.connMu.Unlock()

	return nil
}

// HealthCheck verifies the MQTT connection is alive.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, error describing the issue otherwise
func (c *Client) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("mqtt health check: %w", ctx.Err())
	default:
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	return nil
}

// IsConnected returns the current connection state.
func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected && c.client != nil && c.client.IsConnected()
}

// Topics returns the topic builder for the configured prefix.
func (c *Client) Topics() Topics {
	return c.topics
}

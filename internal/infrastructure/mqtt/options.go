package mqtt

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/solar-export/internal/infrastructure/config"
)

const (
	// defaultTimeout applies to connect and publish when mqtt.timeout is unset.
	defaultTimeout = 5 * time.Second

	// disconnectQuiesce is how long Disconnect waits for in-flight work, in ms.
	disconnectQuiesce = 250

	// keepAlive only has to outlive a single export run.
	keepAlive = 30 * time.Second

	maxQoS = 2

	tlsMinVersion = tls.VersionTLS12
)

// Status reasons carried in offline messages.
const (
	reasonUnexpected = "unexpected_disconnect"
	reasonFinished   = "run_finished"
)

// statusMessage is the retained document on {prefix}/status.
type statusMessage struct {
	Status    string `json:"status"`
	ClientID  string `json:"client_id"`
	Reason    string `json:"reason,omitempty"`
	Timestamp string `json:"timestamp"`
}

// statusPayload encodes a status document stamped with the current UTC time.
func statusPayload(status, clientID, reason string) []byte {
	// A struct of strings always marshals.
	data, _ := json.Marshal(statusMessage{
		Status:    status,
		ClientID:  clientID,
		Reason:    reason,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	return data
}

// timeout returns the configured connect/publish timeout.
func timeout(cfg config.MQTTConfig) time.Duration {
	if d := cfg.GetTimeout(); d > 0 {
		return d
	}
	return defaultTimeout
}

// buildClientOptions creates paho options for one short-lived session.
//
// The session is clean and is neither retried nor reconnected. A broker
// that is down or drops the link ends MQTT output for the run.
func buildClientOptions(cfg config.MQTTConfig) *pahomqtt.ClientOptions {
	scheme := "tcp"
	if cfg.Broker.TLS {
		scheme = "ssl"
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("%s://%s:%d", scheme, cfg.Broker.Host, cfg.Broker.Port)).
		SetClientID(cfg.Broker.ClientID).
		SetCleanSession(true).
		SetAutoReconnect(false).
		SetConnectRetry(false).
		SetConnectTimeout(timeout(cfg)).
		SetKeepAlive(keepAlive)

	if cfg.Auth.Username != "" {
		opts.SetUsername(cfg.Auth.Username)
		opts.SetPassword(cfg.Auth.Password)
	}

	if cfg.Broker.TLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tlsMinVersion})
	}

	return opts
}

// configureLWT registers an offline will on {prefix}/status (QoS 1,
// retained). The broker sends it only when a run dies without Close.
func configureLWT(opts *pahomqtt.ClientOptions, topics Topics, clientID string) {
	opts.SetBinaryWill(topics.Status(), statusPayload("offline", clientID, reasonUnexpected), 1, true)
}

package tsdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nerrad567/solar-export/internal/infrastructure/config"
)

const (
	defaultWriteTimeout = 10 * time.Second

	// maxErrorBody bounds how much of a rejected response is kept in errors.
	maxErrorBody = 512

	contentType = "text/plain; charset=utf-8"
)

// Client posts InfluxDB line protocol over plain HTTP.
//
// One Client is created at startup and reused for every export so that
// keep-alive connections are shared. Each Post is one synchronous round
// trip; there is no batching, retry, or backoff.
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	httpClient *http.Client

	closed bool
	mu     sync.RWMutex
}

// New creates an HTTP line-protocol client.
//
// Parameters:
//   - cfg: InfluxDB configuration from config.yaml
//
// Returns:
//   - *Client: Client ready for use
//   - error: ErrDisabled if export is disabled
func New(cfg config.InfluxDBConfig) (*Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	timeout := cfg.GetTimeout()
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Post sends body verbatim to endpoint.
//
// A response status in [200, 300) is success. Any other status returns
// ErrWriteFailed carrying the status code and the start of the response
// body. The response body is always drained and closed.
//
// Parameters:
//   - ctx: Context for cancellation
//   - endpoint: Fully built write URL
//   - body: Newline-separated line protocol
//   - auth: Credential attached to the request
//
// Returns:
//   - error: nil on success
func (c *Client) Post(ctx context.Context, endpoint, body string, auth Credential) error {
	if c.isClosed() {
		return ErrClosed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	req.Header.Set("Content-Type", contentType)
	applyAuth(req, auth)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		// Drain the remainder to allow connection reuse
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: HTTP %d: %s", ErrWriteFailed, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	// Drain body to allow connection reuse
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// HealthCheck verifies the server answers GET /ping.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - baseURL: Server root, e.g. http://localhost:8086
//
// Returns:
//   - error: nil if healthy, error describing the issue otherwise
func (c *Client) HealthCheck(ctx context.Context, baseURL string) error {
	if c.isClosed() {
		return ErrClosed
	}

	url := strings.TrimRight(baseURL, "/") + "/ping"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHealthCheckFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHealthCheckFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrHealthCheckFailed, resp.StatusCode)
	}

	return nil
}

// Close releases idle connections. Later calls to Post return ErrClosed.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func applyAuth(req *http.Request, auth Credential) {
	switch auth.Scheme {
	case AuthBasic:
		req.SetBasicAuth(auth.Username, auth.Password)
	case AuthToken:
		req.Header.Set("Authorization", "Token "+auth.Token)
	}
}

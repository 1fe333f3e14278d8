package export

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/nerrad567/solar-export/internal/infrastructure/config"
	"github.com/nerrad567/solar-export/internal/infrastructure/tsdb"
	"github.com/nerrad567/solar-export/internal/lineprotocol"
)

// API modes.
const (
	ModeLegacy = config.ModeLegacy
	ModeV2     = config.ModeV2
)

// Target is a resolved InfluxDB write destination.
//
// Legacy mode uses URL (or Host and Port), Database, Username and Password.
// V2 mode uses URL, Token, Org and Bucket.
type Target struct {
	Mode      string
	URL       string
	Host      string
	Port      int
	Database  string
	Username  string
	Password  string
	Token     string
	Org       string
	Bucket    string
	Precision lineprotocol.Precision
}

// TargetFromConfig copies the export destination out of cfg.
// An unparseable precision is left as-is and rejected by WriteURL.
func TargetFromConfig(cfg config.InfluxDBConfig) Target {
	return Target{
		Mode:      cfg.Mode,
		URL:       cfg.URL,
		Host:      cfg.Host,
		Port:      cfg.Port,
		Database:  cfg.Database,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Token:     cfg.Token,
		Org:       cfg.Org,
		Bucket:    cfg.Bucket,
		Precision: lineprotocol.Precision(cfg.Precision),
	}
}

// precision returns the configured precision, defaulting to seconds.
func (t Target) precision() (lineprotocol.Precision, error) {
	if t.Precision == "" {
		return lineprotocol.Seconds, nil
	}
	return lineprotocol.ParsePrecision(string(t.Precision))
}

// baseURL returns the server root without a trailing slash.
func (t Target) baseURL() string {
	if t.URL != "" {
		return strings.TrimRight(t.URL, "/")
	}
	return "http://" + net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// BaseURL returns the server root used by WriteURL, for health checks.
func (t Target) BaseURL() string {
	return t.baseURL()
}

// WriteURL builds the write endpoint for t.
//
// Legacy:
//
//	http://{host}:{port}/write?u={user}&p={password}&precision={p}&db={database}
//
// V2:
//
//	{url}/api/v2/write?org={org}&bucket={bucket}&precision={p}
//
// Query values are escaped; parameter order is fixed.
func WriteURL(t Target) (string, error) {
	p, err := t.precision()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}

	var b strings.Builder
	switch t.Mode {
	case ModeLegacy:
		if t.URL == "" && t.Host == "" {
			return "", fmt.Errorf("%w: legacy mode needs a url or host", ErrInvalidTarget)
		}
		b.WriteString(t.baseURL())
		b.WriteString("/write?u=")
		b.WriteString(url.QueryEscape(t.Username))
		b.WriteString("&p=")
		b.WriteString(url.QueryEscape(t.Password))
		b.WriteString("&precision=")
		b.WriteString(p.String())
		b.WriteString("&db=")
		b.WriteString(url.QueryEscape(t.Database))
	case ModeV2:
		if t.URL == "" {
			return "", fmt.Errorf("%w: v2 mode needs a url", ErrInvalidTarget)
		}
		b.WriteString(t.baseURL())
		b.WriteString("/api/v2/write?org=")
		b.WriteString(url.QueryEscape(t.Org))
		b.WriteString("&bucket=")
		b.WriteString(url.QueryEscape(t.Bucket))
		b.WriteString("&precision=")
		b.WriteString(p.String())
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidTarget, t.Mode)
	}

	return b.String(), nil
}

// Credential returns basic auth for legacy mode and token auth for v2.
func (t Target) Credential() tsdb.Credential {
	if t.Mode == ModeV2 {
		return tsdb.TokenAuth(t.Token)
	}
	return tsdb.BasicAuth(t.Username, t.Password)
}

// Package config holds the process configuration of the leadscout server and CLI.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr              string        `koanf:"addr"`
	AdminToken        Secret        `koanf:"admin_token"`
	JWTSigningKey     Secret        `koanf:"jwt_signing_key"`
	JWTIssuer         string        `koanf:"jwt_issuer"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
}

// Database configures the PostgreSQL contact store. An empty URL selects the
// in-memory store.
type Database struct {
	URL          string `koanf:"url"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
}

// Redis configures the feature flag store. An empty URL selects the
// in-memory store.
type Redis struct {
	URL      string `koanf:"url"`
	PoolSize int    `koanf:"pool_size"`
}

// Kafka configures the audit sink. No brokers keeps audit events in memory.
type Kafka struct {
	Brokers    []string `koanf:"brokers"`
	AuditTopic string   `koanf:"audit_topic"`
}

// Screenshot bounds image uploads and the recognizer call.
type Screenshot struct {
	MaxImageBytes int64         `koanf:"max_image_bytes"`
	OCRTimeout    time.Duration `koanf:"ocr_timeout"`
	Languages     []string      `koanf:"languages"`
}

// DOM bounds Live-DOM snapshots.
type DOM struct {
	MaxSnapshotBytes int64 `koanf:"max_snapshot_bytes"`
}

// Classifier points at an optional keyword file replacing the built-in set.
type Classifier struct {
	KeywordsFile string `koanf:"keywords_file"`
}

// Session configures extraction session lifetime and import fan-out.
type Session struct {
	TTL               time.Duration `koanf:"ttl"`
	ImportConcurrency int           `koanf:"import_concurrency"`
}

// Features lists capabilities enabled for tenants that never set them.
type Features struct {
	DefaultEnabled []string `koanf:"default_enabled"`
}

// Audit sizes the asynchronous audit buffer. Zero emits inline.
type Audit struct {
	BufferSize int `koanf:"buffer_size"`
}

// Log selects the slog handler.
type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Config is the full process configuration.
type Config struct {
	Server     Server     `koanf:"server"`
	Database   Database   `koanf:"database"`
	Redis      Redis      `koanf:"redis"`
	Kafka      Kafka      `koanf:"kafka"`
	Screenshot Screenshot `koanf:"screenshot"`
	DOM        DOM        `koanf:"dom"`
	Classifier Classifier `koanf:"classifier"`
	Session    Session    `koanf:"session"`
	Features   Features   `koanf:"features"`
	Audit      Audit      `koanf:"audit"`
	Log        Log        `koanf:"log"`
}

// Defaults.
const (
	DefaultAddr              = ":8080"
	DefaultJWTIssuer         = "leadscout"
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultMaxImageBytes     = 10 << 20
	DefaultOCRTimeout        = 30 * time.Second
	DefaultMaxSnapshotBytes  = 2 << 20
	DefaultSessionTTL        = 30 * time.Minute
	DefaultImportConcurrency = 4
	DefaultAuditTopic        = "leadscout.audit"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "json"
)

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Server.JWTIssuer == "" {
		cfg.Server.JWTIssuer = DefaultJWTIssuer
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}
	if cfg.Kafka.AuditTopic == "" {
		cfg.Kafka.AuditTopic = DefaultAuditTopic
	}
	if cfg.Screenshot.MaxImageBytes == 0 {
		cfg.Screenshot.MaxImageBytes = DefaultMaxImageBytes
	}
	if cfg.Screenshot.OCRTimeout == 0 {
		cfg.Screenshot.OCRTimeout = DefaultOCRTimeout
	}
	if len(cfg.Screenshot.Languages) == 0 {
		cfg.Screenshot.Languages = []string{"eng", "por"}
	}
	if cfg.DOM.MaxSnapshotBytes == 0 {
		cfg.DOM.MaxSnapshotBytes = DefaultMaxSnapshotBytes
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = DefaultSessionTTL
	}
	if cfg.Session.ImportConcurrency == 0 {
		cfg.Session.ImportConcurrency = DefaultImportConcurrency
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.JWTSigningKey.Value() != "" && len(c.Server.JWTSigningKey.Value()) < 16 {
		errs = append(errs, errors.New("server.jwt_signing_key must be at least 16 characters"))
	}
	if c.Screenshot.MaxImageBytes < 0 {
		errs = append(errs, errors.New("screenshot.max_image_bytes must be positive"))
	}
	if c.DOM.MaxSnapshotBytes < 0 {
		errs = append(errs, errors.New("dom.max_snapshot_bytes must be positive"))
	}
	if c.Session.ImportConcurrency < 0 || c.Session.ImportConcurrency > 64 {
		errs = append(errs, fmt.Errorf("session.import_concurrency must be between 1 and 64, got %d", c.Session.ImportConcurrency))
	}
	if c.Audit.BufferSize < 0 {
		errs = append(errs, errors.New("audit.buffer_size must not be negative"))
	}
	if c.Session.TTL < 0 {
		errs = append(errs, errors.New("session.ttl must not be negative"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of json, text", c.Log.Format))
	}

	return errors.Join(errs...)
}

// Secret wraps strings that should be redacted in logs and serialization.
// Use Value() to access the actual secret value.
type Secret string

// String implements fmt.Stringer. Always returns redacted value.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer for %#v formatting.
func (s Secret) GoString() string {
	return "Secret([REDACTED])"
}

// Value returns the actual secret value.
func (s Secret) Value() string {
	return string(s)
}

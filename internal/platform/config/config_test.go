package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leadscout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadWithFile_Defaults(t *testing.T) {
	cfg, err := LoadWithFile("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, int64(DefaultMaxImageBytes), cfg.Screenshot.MaxImageBytes)
	assert.Equal(t, int64(DefaultMaxSnapshotBytes), cfg.DOM.MaxSnapshotBytes)
	assert.Equal(t, DefaultSessionTTL, cfg.Session.TTL)
	assert.Equal(t, DefaultImportConcurrency, cfg.Session.ImportConcurrency)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadWithFile_YAML(t *testing.T) {
	path := writeConfig(t, `server:
  addr: 127.0.0.1:9090
session:
  ttl: 5m
  import_concurrency: 8
screenshot:
  languages: [por]
classifier:
  keywords_file: /etc/leadscout/keywords.yaml
`)

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 8, cfg.Session.ImportConcurrency)
	assert.Equal(t, []string{"por"}, cfg.Screenshot.Languages)
	assert.Equal(t, "/etc/leadscout/keywords.yaml", cfg.Classifier.KeywordsFile)
}

func TestLoadWithFile_FeaturesAndAudit(t *testing.T) {
	path := writeConfig(t, `features:
  default_enabled: [screenshot_import]
audit:
  buffer_size: 128
`)

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"screenshot_import"}, cfg.Features.DefaultEnabled)
	assert.Equal(t, 128, cfg.Audit.BufferSize)
}

func TestLoadWithFile_SampleConfig(t *testing.T) {
	cfg, err := LoadWithFile(filepath.Join("..", "..", "..", "configs", "leadscout.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "configs/keywords.yaml", cfg.Classifier.KeywordsFile)
	assert.Equal(t, 30*time.Second, cfg.Screenshot.OCRTimeout)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
}

func TestLoadWithFile_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: :7000\n")
	t.Setenv("LEADSCOUT_SERVER_ADDR", ":7100")
	t.Setenv("LEADSCOUT_SCREENSHOT_MAX_IMAGE_BYTES", "1024")
	t.Setenv("LEADSCOUT_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("LEADSCOUT_FEATURES_DEFAULT_ENABLED", "screenshot_import")

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":7100", cfg.Server.Addr)
	assert.Equal(t, int64(1024), cfg.Screenshot.MaxImageBytes)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"screenshot_import"}, cfg.Features.DefaultEnabled)
}

func TestLoadWithFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad log level", "log:\n  level: loud\n"},
		{"bad log format", "log:\n  format: xml\n"},
		{"short signing key", "server:\n  jwt_signing_key: short\n"},
		{"import concurrency too high", "session:\n  import_concurrency: 500\n"},
		{"negative audit buffer", "audit:\n  buffer_size: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithFile(writeConfig(t, tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoadWithFile_MissingFile(t *testing.T) {
	_, err := LoadWithFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSecret_Redacted(t *testing.T) {
	s := Secret("super-secret-value")
	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "[REDACTED]", fmt.Sprint(s))
	assert.Equal(t, "super-secret-value", s.Value())
}

package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix         = "LEADSCOUT_"
	configPathEnv     = "LEADSCOUT_CONFIG"
	maxConfigFileSize = 1024 * 1024 // 1MB
)

// Load reads the YAML file named by LEADSCOUT_CONFIG (if set) and then
// applies LEADSCOUT_* environment overrides.
func Load() (*Config, error) {
	return LoadWithFile(os.Getenv(configPathEnv))
}

// LoadWithFile loads configuration from YAML file, then overrides with
// environment variables.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (LEADSCOUT_SERVER_ADDR, LEADSCOUT_SESSION_TTL, etc.)
//  2. YAML config file
//  3. Hardcoded defaults
//
// Environment variables map onto YAML keys by dropping the prefix and
// splitting on the first underscore:
//
//	LEADSCOUT_SERVER_ADDR              -> server.addr
//	LEADSCOUT_SCREENSHOT_MAX_IMAGE_BYTES -> screenshot.max_image_bytes
//	LEADSCOUT_KAFKA_BROKERS="a:9092 b:9092" -> kafka.brokers
func LoadWithFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		content, err := readConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envKeyValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// envKeyValue maps LEADSCOUT_SECTION_FIELD_NAME to section.field_name.
// Space separated values of list keys become slices.
func envKeyValue(key, value string) (string, any) {
	lower := strings.ToLower(strings.TrimPrefix(key, envPrefix))
	if lower == "config" {
		return "", nil
	}

	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower, value
	}
	path := parts[0] + "." + parts[1]

	switch path {
	case "kafka.brokers", "screenshot.languages", "features.default_enabled":
		return path, strings.Fields(strings.ReplaceAll(value, ",", " "))
	}
	return path, value
}

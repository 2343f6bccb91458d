package classifier

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const maxKeywordsFileSize = 1024 * 1024 // 1MB

// Config is the data the classifier is built from. Keywords are single words
// or space-separated phrases.
type Config struct {
	Keywords             []string `koanf:"keywords"`
	ContaminationMarkers []string `koanf:"contamination_markers"`
}

// DefaultConfig returns the built-in keyword set.
func DefaultConfig() Config {
	return Config{
		Keywords:             append([]string(nil), defaultKeywords...),
		ContaminationMarkers: append([]string(nil), defaultContaminationMarkers...),
	}
}

// LoadConfigFile reads a YAML keyword file:
//
//	keywords: [online, typing, ...]
//	contamination_markers: [default, refreshed]
//	extend: true
//
// With extend: true the file adds to the built-in set instead of replacing it.
// An omitted contamination_markers list keeps the defaults.
func LoadConfigFile(path string) (Config, error) {
	content, err := readFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(content)
}

// ParseConfig parses keyword file contents. See LoadConfigFile.
func ParseConfig(content []byte) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("parse keywords file: %w", err)
	}

	var file Config
	if err := k.Unmarshal("", &file); err != nil {
		return Config{}, fmt.Errorf("decode keywords file: %w", err)
	}
	if len(file.Keywords) == 0 {
		return Config{}, fmt.Errorf("keywords file defines no keywords")
	}

	cfg := file
	if k.Bool("extend") {
		cfg = DefaultConfig()
		cfg.Keywords = append(cfg.Keywords, file.Keywords...)
		cfg.ContaminationMarkers = append(cfg.ContaminationMarkers, file.ContaminationMarkers...)
	}
	if len(cfg.ContaminationMarkers) == 0 {
		cfg.ContaminationMarkers = append([]string(nil), defaultContaminationMarkers...)
	}
	return cfg, nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat keywords file: %w", err)
	}
	if info.Size() > maxKeywordsFileSize {
		return nil, fmt.Errorf("keywords file too large: %d bytes (max %d)", info.Size(), maxKeywordsFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keywords file: %w", err)
	}
	return content, nil
}

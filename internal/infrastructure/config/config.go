package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all library configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Tracker TrackerConfig `yaml:"tracker"`
	Restore RestoreConfig `yaml:"restore"`
	Logging LogConfig     `yaml:"logging"`
}

// StoreConfig holds state-file configuration.
type StoreConfig struct {
	// Filename overrides the state file name inside the app's config dir.
	Filename string `envconfig:"WINSTATE_FILENAME" default:"" yaml:"filename"`
}

// TrackerConfig holds debounce configuration.
type TrackerConfig struct {
	// Debounce is the fixed delay between the first change event of a burst
	// and the flush that persists it.
	Debounce time.Duration `envconfig:"WINSTATE_DEBOUNCE" default:"750ms" yaml:"debounce"`
	// QueueSize bounds the change-event queue consumed by the tracker.
	QueueSize int `envconfig:"WINSTATE_QUEUE_SIZE" default:"64" yaml:"queue_size"`
}

// RestoreConfig holds restore validation configuration.
type RestoreConfig struct {
	// MinOverlap is the fraction of a saved rectangle that must intersect a
	// monitor's work area for the raw coordinates to be applied. Below it,
	// or when the rectangle's origin lies outside every monitor, the
	// rectangle is clamped into a monitor.
	MinOverlap float64 `envconfig:"WINSTATE_MIN_OVERLAP" default:"0.25" yaml:"min_overlap"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"WINSTATE_LOG_LEVEL" default:"info" yaml:"level"`
	Development bool   `envconfig:"WINSTATE_LOG_DEV" default:"false" yaml:"development"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// LoadFile reads configuration from a YAML file, layered over the defaults
// so a partial file only overrides what it names.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Tracker: TrackerConfig{
			Debounce:  750 * time.Millisecond,
			QueueSize: 64,
		},
		Restore: RestoreConfig{
			MinOverlap: 0.25,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

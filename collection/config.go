package collection

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/signadot/mutcoll/watch"
)

// Config holds the serializable collection settings.
//
//	watch:
//	  bufferSize: 64
//	  broadcastTimeout: 5s
//	  replayValue: true
type Config struct {
	Watch WatchConfig `yaml:"watch"`
}

// WatchConfig configures the default Streams sink.
type WatchConfig struct {
	// BufferSize is the Events buffer of watchers created without an
	// explicit size.
	BufferSize int `yaml:"bufferSize"`

	// BroadcastTimeout is how long a watcher may block a broadcast before
	// it is failed, as a Go duration string.
	BroadcastTimeout string `yaml:"broadcastTimeout"`

	// ReplayValue makes new value watchers receive the latest snapshot.
	// Unset means true.
	ReplayValue *bool `yaml:"replayValue,omitempty"`
}

func DefaultConfig() *Config {
	replay := true
	return &Config{
		Watch: WatchConfig{
			BufferSize:       watch.DefaultBufferSize,
			BroadcastTimeout: watch.DefaultBroadcastTimeout.String(),
			ReplayValue:      &replay,
		},
	}
}

// LoadConfig reads a YAML configuration file. Settings absent from the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Watch.BufferSize < 0 {
		return fmt.Errorf("watch.bufferSize must not be negative, got %d", c.Watch.BufferSize)
	}
	if _, err := c.Watch.Timeout(); err != nil {
		return err
	}
	return nil
}

// Timeout parses BroadcastTimeout. An empty value is the watch default.
func (w WatchConfig) Timeout() (time.Duration, error) {
	if w.BroadcastTimeout == "" {
		return watch.DefaultBroadcastTimeout, nil
	}
	d, err := time.ParseDuration(w.BroadcastTimeout)
	if err != nil {
		return 0, fmt.Errorf("watch.broadcastTimeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("watch.broadcastTimeout must be positive, got %s", d)
	}
	return d, nil
}

func (w WatchConfig) Replay() bool {
	return w.ReplayValue == nil || *w.ReplayValue
}

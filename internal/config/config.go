// Package config provides configuration types and defaults for soundctl.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Audio backends.
const (
	AudioBeep = "beep"
	AudioNone = "none"
)

// Config holds all configuration options for soundctl.
type Config struct {
	ContentDir string        `mapstructure:"content_dir"`
	Version    int           `mapstructure:"version"`
	Audio      AudioConfig   `mapstructure:"audio"`
	Journal    JournalConfig `mapstructure:"journal"`
	Tracing    TracingConfig `mapstructure:"tracing"`
	Log        LogConfig     `mapstructure:"log"`
	Watch      WatchConfig   `mapstructure:"watch"`
}

// AudioConfig selects and tunes the playback backend.
type AudioConfig struct {
	Backend      string        `mapstructure:"backend"`
	SampleRate   int           `mapstructure:"sample_rate"`
	Buffer       time.Duration `mapstructure:"buffer"`
	MasterVolume float64       `mapstructure:"master_volume"`
}

// JournalConfig controls the playback journal.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// TracingConfig selects a span exporter. An empty exporter disables tracing.
type TracingConfig struct {
	Exporter string `mapstructure:"exporter"`
	Endpoint string `mapstructure:"endpoint"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// WatchConfig controls hot reload.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Version: 6,
		Audio: AudioConfig{
			Backend:      AudioBeep,
			SampleRate:   44100,
			Buffer:       100 * time.Millisecond,
			MasterVolume: 1,
		},
		Journal: JournalConfig{
			Path: "~/.soundctl/journal.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// SetDefaults registers Defaults with v so that unset keys fall back to them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("content_dir", d.ContentDir)
	v.SetDefault("version", d.Version)
	v.SetDefault("audio.backend", d.Audio.Backend)
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.buffer", d.Audio.Buffer)
	v.SetDefault("audio.master_volume", d.Audio.MasterVolume)
	v.SetDefault("journal.enabled", d.Journal.Enabled)
	v.SetDefault("journal.path", d.Journal.Path)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.endpoint", d.Tracing.Endpoint)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	var errs []error
	if c.Version < 1 || c.Version > 255 {
		errs = append(errs, fmt.Errorf("version: %d out of range 1..255", c.Version))
	}
	switch c.Audio.Backend {
	case AudioBeep, AudioNone:
	default:
		errs = append(errs, fmt.Errorf("audio.backend: unknown backend %q (want %q or %q)", c.Audio.Backend, AudioBeep, AudioNone))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate: must be positive"))
	}
	if c.Audio.Buffer <= 0 {
		errs = append(errs, fmt.Errorf("audio.buffer: must be positive"))
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		errs = append(errs, fmt.Errorf("audio.master_volume: %g out of range 0..1", c.Audio.MasterVolume))
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		errs = append(errs, fmt.Errorf("journal.path: required when the journal is enabled"))
	}
	switch c.Tracing.Exporter {
	case "", "stdout", "otlp":
	default:
		errs = append(errs, fmt.Errorf("tracing.exporter: unknown exporter %q", c.Tracing.Exporter))
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce: must not be negative"))
	}
	return errors.Join(errs...)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# soundctl configuration

# Content directory holding library.yaml (default: current directory)
# content_dir: ./content

# Compatibility version for movies whose manifest entry omits one.
# Sound objects exist from version 6.
version: 6

audio:
  backend: beep          # beep (speaker output) or none (silent, for CI)
  sample_rate: 44100
  buffer: 100ms          # speaker buffer
  master_volume: 1.0     # 0.0 - 1.0

# Playback journal: every start/stop request is recorded per run.
# Inspect with 'soundctl history'.
journal:
  enabled: false
  path: ~/.soundctl/journal.db

# Spans for script host calls (Sound.start, stopAllSounds, ...)
tracing:
  exporter: ""           # "", stdout or otlp
  # endpoint: localhost:4317

log:
  level: info            # debug, info, warn, error
  # file: ~/.soundctl/soundctl.log

# Hot reload (soundctl run --watch)
watch:
  debounce: 200ms
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

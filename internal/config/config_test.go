package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_AreValid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
content_dir: ./demo
version: 7
audio:
  backend: none
  buffer: 50ms
journal:
  enabled: true
tracing:
  exporter: stdout
watch:
  debounce: 1s
`)

	assert.Equal(t, "./demo", cfg.ContentDir)
	assert.Equal(t, 7, cfg.Version)
	assert.Equal(t, AudioNone, cfg.Audio.Backend)
	assert.Equal(t, 50*time.Millisecond, cfg.Audio.Buffer)
	assert.Equal(t, 44100, cfg.Audio.SampleRate, "unset keys keep defaults")
	assert.InDelta(t, 1.0, cfg.Audio.MasterVolume, 1e-9)
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, "~/.soundctl/journal.db", cfg.Journal.Path)
	assert.Equal(t, "stdout", cfg.Tracing.Exporter)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SOUNDCTL_AUDIO_BACKEND", "none")

	v := viper.New()
	v.SetEnvPrefix("SOUNDCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, AudioNone, cfg.Audio.Backend)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	configPath := writeConfig(t, `
version: 0
audio:
  backend: alsa
  master_volume: 2
tracing:
  exporter: zipkin
`)
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	_, err := Load(v)
	require.Error(t, err)
	for _, want := range []string{"version", "audio.backend", "audio.master_volume", "tracing.exporter"} {
		assert.ErrorContains(t, err, want)
	}
}

func TestValidate_TableDriven(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"max version", func(c *Config) { c.Version = 255 }, ""},
		{"version too high", func(c *Config) { c.Version = 256 }, "version"},
		{"zero sample rate", func(c *Config) { c.Audio.SampleRate = 0 }, "audio.sample_rate"},
		{"zero buffer", func(c *Config) { c.Audio.Buffer = 0 }, "audio.buffer"},
		{"negative volume", func(c *Config) { c.Audio.MasterVolume = -0.1 }, "audio.master_volume"},
		{"journal without path", func(c *Config) { c.Journal = JournalConfig{Enabled: true} }, "journal.path"},
		{"disabled journal without path", func(c *Config) { c.Journal = JournalConfig{} }, ""},
		{"otlp", func(c *Config) { c.Tracing.Exporter = "otlp" }, ""},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, "watch.debounce"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	cfg := loadConfigFromYAML(t, DefaultConfigTemplate())
	require.Equal(t, Defaults(), cfg)
}

func TestWriteDefaultConfig_CreatesParentDir(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "soundctl", "config.yaml")

	require.NoError(t, WriteDefaultConfig(configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

// loadConfigFromYAML loads content through viper the same way the CLI does.
func loadConfigFromYAML(t *testing.T, content string) Config {
	t.Helper()

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(writeConfig(t, content))
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	return cfg
}

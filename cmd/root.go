// Package cmd implements the soundctl command line.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/soundctl/internal/config"
	"github.com/zjrosen/soundctl/internal/log"
	"github.com/zjrosen/soundctl/internal/paths"
)

const envPrefix = "SOUNDCTL"

var (
	cfgFile  string
	debug    bool
	cfg      config.Config
	logFlush = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "soundctl",
	Short: "Run Lua content scripts that drive a sound mixer",
	Long: `soundctl loads a content directory (library.yaml plus sound files),
places its root movie on a stage and runs Lua scripts against it. Scripts
control playback through Sound objects scoped to display clips.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { logFlush() },
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./"+paths.LocalConfigFile+" or "+paths.DefaultConfigPath()+")")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "human-readable debug logging")
}

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads configuration and initializes logging before every command.
func setup(cmd *cobra.Command, _ []string) error {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}
	loaded, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = loaded

	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	flush, err := log.Init(log.Options{
		Level:       level,
		File:        paths.ExpandHome(cfg.Log.File),
		Development: debug,
	})
	if err != nil {
		return err
	}
	logFlush = flush

	if used := v.ConfigFileUsed(); used != "" {
		log.Debug(log.CatConfig, "Config loaded", "file", used)
	}
	return nil
}

// newViper resolves the config file, environment and flags into a viper
// instance. An explicit --config must exist; the default locations are
// optional.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	config.SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if f := cmd.Flags().Lookup("log-level"); f != nil {
		if err := v.BindPFlag("log.level", f); err != nil {
			return nil, err
		}
	}

	path := cfgFile
	if path == "" {
		for _, candidate := range []string{paths.LocalConfigFile, paths.DefaultConfigPath()} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return v, nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return v, nil
}

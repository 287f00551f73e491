// Package log provides category-based structured logging for soundctl.
//
// Calls take a category, a message and alternating key/value pairs:
//
//	log.Debug(log.CatAudio, "Sound started", "sound", name, "loops", loops)
//
// Until Init is called every call is discarded, so library packages can log
// unconditionally without forcing a logger on their callers.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category groups log lines by subsystem.
type Category string

// Log categories.
const (
	CatConfig  Category = "config"
	CatDB      Category = "db"
	CatAudio   Category = "audio"
	CatLibrary Category = "library"
	CatScript  Category = "script"
	CatWatcher Category = "watcher"
	CatCLI     Category = "cli"
)

// Options configures the global logger.
type Options struct {
	// Level is one of "debug", "info", "warn", "error". Empty means "info".
	Level string
	// File, when set, receives JSON log lines instead of stderr.
	File string
	// Development switches to zap's human-readable console encoder.
	Development bool
}

var (
	mu     sync.RWMutex
	logger = zap.NewNop().Sugar()
)

// Init replaces the global logger according to opts.
// The returned function flushes buffered entries and should be deferred.
func Init(opts Options) (func(), error) {
	level, err := zapcore.ParseLevel(strings.ToLower(opts.Level))
	if opts.Level == "" {
		level, err = zapcore.InfoLevel, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", opts.Level, err)
	}

	var cfg zap.Config
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0750); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	}

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	SetLogger(z)
	return func() { _ = z.Sync() }, nil
}

// SetLogger installs z as the global logger. Passing nil restores the no-op logger.
func SetLogger(z *zap.Logger) {
	if z == nil {
		z = zap.NewNop()
	}
	mu.Lock()
	logger = z.Sugar()
	mu.Unlock()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func with(cat Category, kv []any) []any {
	return append([]any{"category", string(cat)}, kv...)
}

// Debug logs a debug message.
func Debug(cat Category, msg string, kv ...any) {
	current().Debugw(msg, with(cat, kv)...)
}

// Info logs an informational message.
func Info(cat Category, msg string, kv ...any) {
	current().Infow(msg, with(cat, kv)...)
}

// Warn logs a warning.
func Warn(cat Category, msg string, kv ...any) {
	current().Warnw(msg, with(cat, kv)...)
}

// Error logs an error message without an attached error value.
func Error(cat Category, msg string, kv ...any) {
	current().Errorw(msg, with(cat, kv)...)
}

// ErrorErr logs msg at error level with err attached under the "error" key.
func ErrorErr(cat Category, msg string, err error, kv ...any) {
	current().Errorw(msg, with(cat, append([]any{"error", err}, kv...))...)
}

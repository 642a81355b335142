package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/mvi-reducer/internal/logger"
)

// Config holds the settings of the counter demo.
type Config struct {
	// LogLevel is the level of the global logger.
	LogLevel string `env:"MVI_LOG_LEVEL" yaml:"log_level"`
	// TraceLevel is the level of the reducer trace written by the logging decorator.
	TraceLevel string `env:"MVI_TRACE_LEVEL" yaml:"trace_level"`
	// Title is the caption of the counter screen.
	Title string `env:"MVI_TITLE" yaml:"title"`
	// TickInterval is the delay between background index updates.
	TickInterval time.Duration `env:"MVI_TICK_INTERVAL" yaml:"tick_interval"`
	// TickCount is the number of indexes to emit; zero means endless.
	TickCount int `env:"MVI_TICK_COUNT" yaml:"tick_count"`
	// FailAt makes the index source fail at this index; zero disables it.
	FailAt int `env:"MVI_FAIL_AT" yaml:"fail_at"`
}

const (
	// DefaultConfigFilename is the default filename for the demo settings.
	DefaultConfigFilename = "mvi-counter.yaml"

	// DefaultLogLevel is the level used when none is configured.
	DefaultLogLevel = "info"

	// DefaultTraceLevel is the reducer trace level used when none is configured.
	DefaultTraceLevel = "debug"

	// DefaultTitle is the screen caption used when none is configured.
	DefaultTitle = "Counter"

	// DefaultTickInterval is the delay between index updates.
	DefaultTickInterval = time.Second

	// DefaultFilePermissions is the permission of written config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNegativeTickCount is returned for a negative tick count.
	errNegativeTickCount = errors.New("tick count must not be negative")
	// errNegativeFailAt is returned for a negative failure index.
	errNegativeFailAt = errors.New("fail index must not be negative")
	// errInvalidLevel is returned for an unknown log level.
	errInvalidLevel = errors.New("unknown log level")
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel:     DefaultLogLevel,
		TraceLevel:   DefaultTraceLevel,
		Title:        DefaultTitle,
		TickInterval: DefaultTickInterval,
	}
}

// Load reads configuration from path, applies environment overrides and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := new(Config)
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	return finish(cfg)
}

// LoadOrDefault behaves like Load but starts from Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return finish(Default())
	}

	return cfg, err
}

// Save validates cfg and writes it to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks cfg and fills defaults for empty fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if cfg.TraceLevel == "" {
		cfg.TraceLevel = DefaultTraceLevel
	}

	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}

	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: log_level %q", errInvalidLevel, cfg.LogLevel)
	}

	if _, ok := logger.ParseLogLevel(cfg.TraceLevel); !ok {
		return fmt.Errorf("%w: trace_level %q", errInvalidLevel, cfg.TraceLevel)
	}

	if cfg.TickCount < 0 {
		return errNegativeTickCount
	}

	if cfg.FailAt < 0 {
		return errNegativeFailAt
	}

	return nil
}

// finish applies environment overrides and validates cfg.
func finish(cfg *Config) (*Config, error) {
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

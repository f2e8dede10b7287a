// Package config loads runtime settings: built-in defaults, then an optional
// YAML file, then SONIK_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/sonikatlas/sonik/pkg/debug"
	"github.com/sonikatlas/sonik/pkg/dsp"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SONIK_"

// Config holds the settings of one process.
type Config struct {
	SampleRate   int           `yaml:"sample_rate"   env:"SAMPLE_RATE"`
	BlockSize    int           `yaml:"block_size"    env:"BLOCK_SIZE"`
	MasterGain   float64       `yaml:"master_gain"   env:"MASTER_GAIN"`
	AutoStop     time.Duration `yaml:"auto_stop"     env:"AUTO_STOP"`
	PollInterval time.Duration `yaml:"poll_interval" env:"POLL_INTERVAL"`
	Seed         int64         `yaml:"seed"          env:"SEED"`
	LogLevel     string        `yaml:"log_level"     env:"LOG_LEVEL"`
	Catalog      string        `yaml:"catalog"       env:"CATALOG"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		SampleRate:   dsp.DefaultSampleRate,
		BlockSize:    dsp.RenderQuantum,
		MasterGain:   dsp.MasterGain,
		AutoStop:     5 * time.Second,
		PollInterval: 500 * time.Millisecond,
		LogLevel:     "info",
	}
}

// Load returns the defaults overlaid with the YAML file at path, if path is
// not empty, and then with the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %q: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var err error
	if c.SampleRate <= 0 {
		err = multierr.Append(err, fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate))
	}
	if c.BlockSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("block_size must be positive, got %d", c.BlockSize))
	}
	if c.MasterGain <= 0 || c.MasterGain > 1 {
		err = multierr.Append(err, fmt.Errorf("master_gain must be in (0, 1], got %g", c.MasterGain))
	}
	if c.AutoStop <= 0 {
		err = multierr.Append(err, fmt.Errorf("auto_stop must be positive, got %s", c.AutoStop))
	}
	if c.PollInterval <= 0 {
		err = multierr.Append(err, fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval))
	}
	if _, lerr := debug.ParseLevel(c.LogLevel); lerr != nil {
		err = multierr.Append(err, lerr)
	}
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Level returns the parsed log level, or info when it does not parse.
func (c Config) Level() debug.LogLevel {
	l, err := debug.ParseLevel(c.LogLevel)
	if err != nil {
		return debug.LogLevelInfo
	}
	return l
}

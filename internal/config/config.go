// Package config handles c2probe configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Report formats understood by the scenario runner.
const (
	FormatText    = "text"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds all c2probe settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Runner  RunnerConfig  `yaml:"runner"`
	Output  OutputConfig  `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// RunnerConfig controls how scenario queries are executed.
type RunnerConfig struct {
	Workers    int `yaml:"workers"`     // queries evaluated at once
	SweepSteps int `yaml:"sweep_steps"` // default step count for sweep queries
}

// OutputConfig selects the report encoding and destination. An empty
// path writes to stdout.
type OutputConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Runner: RunnerConfig{
			Workers:    4,
			SweepSteps: 10,
		},
		Output: OutputConfig{
			Format: FormatText,
			Path:   "",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Runner.Workers < 1 {
		return fmt.Errorf("%w: runner.workers must be at least 1, got %d", ErrInvalidConfig, c.Runner.Workers)
	}
	if c.Runner.SweepSteps < 1 {
		return fmt.Errorf("%w: runner.sweep_steps must be at least 1, got %d", ErrInvalidConfig, c.Runner.SweepSteps)
	}
	switch c.Output.Format {
	case FormatText, FormatYAML, FormatMsgpack:
	default:
		return fmt.Errorf("%w: unknown output.format %q", ErrInvalidConfig, c.Output.Format)
	}
	return nil
}

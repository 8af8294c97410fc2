// Package config provides configuration management for the sampler.
package config

import (
	"math"
	"strings"
	"time"

	"emperror.dev/errors"
	log "github.com/sirupsen/logrus"

	"ProcSampler/pkg/utils"
)

// ErrInvalidConfig marks every configuration error; the recorder never starts sampling with one.
const ErrInvalidConfig = errors.Sentinel("invalid configuration")

// Config holds all sampler configuration options.
type Config struct {
	// Target
	PID uint32

	// Sampling settings
	IntervalMs            uint64
	Jitter                bool
	JitterMinMs           uint64
	JitterMaxMs           uint64
	CollectTemperature    bool
	CollectGPUTemperature bool
	GPUIndex              int

	// Output settings
	OutputFile string

	// Graph / convert settings
	GraphOutput   string
	ConvertOutput string

	LogLevel   string
	ConfigFile string
	SessionID  string
}

// Default configuration values.
const (
	DefaultLogLevel = "info"
)

// New creates a Config with default values.
func New() *Config {
	return &Config{
		JitterMinMs: utils.DefaultJitterMin,
		JitterMaxMs: utils.DefaultJitterMax,
		LogLevel:    DefaultLogLevel,
		SessionID:   utils.NewSessionID(),
	}
}

// Persist reports whether samples are appended to an output file.
// Without an output path the recorder only prints to the console.
func (c *Config) Persist() bool {
	return c.OutputFile != ""
}

// Interval returns the fixed inter-sample delay.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// ValidLogLevels returns the accepted --log values.
func ValidLogLevels() []string {
	return []string{"trace", "debug", "info", "warn", "error"}
}

// ParseLogLevel maps a case-insensitive --log value onto a logrus level.
func ParseLogLevel(level string) (log.Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(level))
	for _, l := range ValidLogLevels() {
		if l == normalized {
			return log.ParseLevel(normalized)
		}
	}
	return log.InfoLevel, errors.Wrapf(ErrInvalidConfig,
		"invalid log level %q (valid: %s)", level, strings.Join(ValidLogLevels(), ", "))
}

// Validate checks the recording configuration for errors.
func (c *Config) Validate() error {
	if c.PID == 0 {
		return errors.Wrap(ErrInvalidConfig, "--pid is required")
	}
	if c.PID > math.MaxInt32 {
		return errors.Wrapf(ErrInvalidConfig, "pid %d out of range", c.PID)
	}

	if c.IntervalMs == 0 {
		return errors.Wrap(ErrInvalidConfig, "--interval is required and must be greater than 0")
	}
	if c.IntervalMs > uint64(math.MaxInt64/int64(time.Millisecond)) {
		return errors.Wrapf(ErrInvalidConfig, "interval %dms out of range", c.IntervalMs)
	}

	if c.Jitter {
		if c.JitterMinMs == 0 {
			return errors.Wrap(ErrInvalidConfig, "--jitter-min must be greater than 0")
		}
		if c.JitterMinMs > c.JitterMaxMs {
			return errors.Wrapf(ErrInvalidConfig,
				"--jitter-min (%d) must not exceed --jitter-max (%d)", c.JitterMinMs, c.JitterMaxMs)
		}
	}

	if c.GPUIndex < 0 {
		return errors.Wrapf(ErrInvalidConfig, "--gpu-index must not be negative, got %d", c.GPUIndex)
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

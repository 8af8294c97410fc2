package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	c := New()
	c.PID = 1234
	c.IntervalMs = 500
	return c
}

func newTestCmd(c *Config) *cobra.Command {
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	c.AddGlobalFlags(cmd)
	c.AddSamplingFlags(cmd)
	c.AddOutputFlags(cmd)
	return cmd
}

func TestNewDefaults(t *testing.T) {
	c := New()
	assert.Equal(t, uint64(150), c.JitterMinMs)
	assert.Equal(t, uint64(999), c.JitterMaxMs)
	assert.Equal(t, "info", c.LogLevel)
	assert.NotEmpty(t, c.SessionID)
	assert.False(t, c.Persist())
	assert.False(t, c.Jitter)
	assert.False(t, c.CollectTemperature)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing pid", func(c *Config) { c.PID = 0 }, true},
		{"pid out of range", func(c *Config) { c.PID = 1 << 31 }, true},
		{"missing interval", func(c *Config) { c.IntervalMs = 0 }, true},
		{"jitter inverted bounds", func(c *Config) { c.Jitter = true; c.JitterMinMs = 900; c.JitterMaxMs = 200 }, true},
		{"jitter zero min", func(c *Config) { c.Jitter = true; c.JitterMinMs = 0 }, true},
		{"jitter equal bounds", func(c *Config) { c.Jitter = true; c.JitterMinMs = 300; c.JitterMaxMs = 300 }, false},
		{"inverted bounds ignored without jitter", func(c *Config) { c.JitterMinMs = 900; c.JitterMaxMs = 200 }, false},
		{"negative gpu index", func(c *Config) { c.GPUIndex = -1 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"log level uppercase", func(c *Config) { c.LogLevel = "WARN" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]log.Level{
		"trace": log.TraceLevel,
		"DEBUG": log.DebugLevel,
		"Info":  log.InfoLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLogLevel("panic")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestIntervalAndPersist(t *testing.T) {
	c := validConfig()
	assert.Equal(t, 500*time.Millisecond, c.Interval())

	c.OutputFile = "out.csv"
	assert.True(t, c.Persist())
}

func TestLoadFromFlags(t *testing.T) {
	c := New()
	cmd := newTestCmd(c)
	require.NoError(t, cmd.ParseFlags([]string{"-p", "77", "-i", "250", "-o", "x.csv", "--temperature", "--log", "debug"}))
	require.NoError(t, c.Load(cmd))

	assert.Equal(t, uint32(77), c.PID)
	assert.Equal(t, uint64(250), c.IntervalMs)
	assert.Equal(t, "x.csv", c.OutputFile)
	assert.True(t, c.CollectTemperature)
	assert.Equal(t, "debug", c.LogLevel)
	assert.NoError(t, c.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PROCSAMPLER_PID", "4242")
	t.Setenv("PROCSAMPLER_INTERVAL", "1000")
	t.Setenv("PROCSAMPLER_JITTER_MAX", "700")

	c := New()
	cmd := newTestCmd(c)
	require.NoError(t, cmd.ParseFlags([]string{"--jitter"}))
	require.NoError(t, c.Load(cmd))

	assert.Equal(t, uint32(4242), c.PID)
	assert.Equal(t, uint64(1000), c.IntervalMs)
	assert.Equal(t, uint64(700), c.JitterMaxMs)
	assert.Equal(t, uint64(150), c.JitterMinMs)
	assert.True(t, c.Jitter)
}

func TestLoadFlagBeatsEnv(t *testing.T) {
	t.Setenv("PROCSAMPLER_PID", "4242")

	c := New()
	cmd := newTestCmd(c)
	require.NoError(t, cmd.ParseFlags([]string{"--pid", "9"}))
	require.NoError(t, c.Load(cmd))

	assert.Equal(t, uint32(9), c.PID)
}

func TestLoadFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sampler.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pid: 31\ninterval: 125\ngpu-temperature: true\n"), 0644))

	c := New()
	cmd := newTestCmd(c)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))
	require.NoError(t, c.Load(cmd))

	assert.Equal(t, uint32(31), c.PID)
	assert.Equal(t, uint64(125), c.IntervalMs)
	assert.True(t, c.CollectGPUTemperature)
}

func TestLoadMissingConfigFile(t *testing.T) {
	c := New()
	cmd := newTestCmd(c)
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}))

	err := c.Load(cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

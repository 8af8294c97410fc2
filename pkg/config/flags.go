package config

import (
	"strings"

	"emperror.dev/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ProcSampler/pkg/utils"
)

// AddSamplingFlags adds the target and sampling flags to a command.
func (c *Config) AddSamplingFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Uint32VarP(&c.PID, "pid", "p", c.PID, "Process ID to sample (required)")
	flags.Uint64VarP(&c.IntervalMs, "interval", "i", c.IntervalMs, "Sampling interval in milliseconds (required, ignored with --jitter)")
	flags.BoolVar(&c.Jitter, "jitter", c.Jitter, "Draw each delay uniformly from [--jitter-min, --jitter-max] ms")
	flags.Uint64Var(&c.JitterMinMs, "jitter-min", c.JitterMinMs, "Lower jitter bound in milliseconds")
	flags.Uint64Var(&c.JitterMaxMs, "jitter-max", c.JitterMaxMs, "Upper jitter bound in milliseconds (inclusive)")
	flags.BoolVar(&c.CollectTemperature, "temperature", c.CollectTemperature, "Record the CPU package temperature")
	flags.BoolVar(&c.CollectGPUTemperature, "gpu-temperature", c.CollectGPUTemperature, "Record the NVIDIA GPU temperature")
	flags.IntVar(&c.GPUIndex, "gpu-index", c.GPUIndex, "NVIDIA device index for --gpu-temperature")
}

// AddOutputFlags adds the output file flag to a command.
func (c *Config) AddOutputFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&c.OutputFile, "output", "o", c.OutputFile, "CSV file to append samples to (console only if empty)")
}

// AddGlobalFlags adds flags shared by every subcommand.
func (c *Config) AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&c.LogLevel, "log", c.LogLevel, "Log level: trace, debug, info, warn, error")
	flags.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Optional config file (yaml, toml, json)")
}

// Load overlays environment variables and the optional config file onto the
// parsed flags. Flags set on the command line always win.
func (c *Config) Load(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix(utils.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind flags")
	}

	if c.ConfigFile != "" {
		v.SetConfigFile(c.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "read config file %s: %v", c.ConfigFile, err)
		}
	}

	if v.IsSet("pid") {
		c.PID = v.GetUint32("pid")
	}
	if v.IsSet("interval") {
		c.IntervalMs = v.GetUint64("interval")
	}
	if v.IsSet("jitter") {
		c.Jitter = v.GetBool("jitter")
	}
	if v.IsSet("jitter-min") {
		c.JitterMinMs = v.GetUint64("jitter-min")
	}
	if v.IsSet("jitter-max") {
		c.JitterMaxMs = v.GetUint64("jitter-max")
	}
	if v.IsSet("temperature") {
		c.CollectTemperature = v.GetBool("temperature")
	}
	if v.IsSet("gpu-temperature") {
		c.CollectGPUTemperature = v.GetBool("gpu-temperature")
	}
	if v.IsSet("gpu-index") {
		c.GPUIndex = v.GetInt("gpu-index")
	}
	if v.IsSet("output") {
		c.OutputFile = v.GetString("output")
	}
	if v.IsSet("log") {
		c.LogLevel = v.GetString("log")
	}

	return nil
}

// Package commands provides CLI command implementations.
package commands

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ProcSampler/pkg/config"
)

// NewRootCmd creates the root command, which records, with its subcommands.
func NewRootCmd() *cobra.Command {
	cfg := config.New()

	root := &cobra.Command{
		Use:   "procsampler",
		Short: "Sample a process's RAM and CPU usage",
		Long: `ProcSampler samples the memory and CPU utilization of one process at a fixed
or jittered interval, optionally with the CPU package and GPU temperature,
printing every sample and appending it to a CSV file.

Commands:
  graph      Render a recorded file as interactive HTML charts
  convert    Convert a recorded CSV file to Parquet

Example:
  procsampler --pid 4242 --interval 500 --output run.csv
  procsampler -p 4242 -i 500 --jitter --temperature -o run.csv`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecord(cmd, cfg)
		},
	}

	cfg.AddGlobalFlags(root)
	cfg.AddSamplingFlags(root)
	cfg.AddOutputFlags(root)

	root.AddCommand(
		NewGraphCmd(cfg),
		NewConvertCmd(cfg),
	)

	return root
}

// Execute runs the root command and exits non-zero on any error.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		log.WithError(err).Error("procsampler failed")
		os.Exit(1)
	}
}

package commands

import (
	"fmt"
	"os"

	"emperror.dev/errors"
	"github.com/spf13/cobra"

	"ProcSampler/pkg/config"
	"ProcSampler/pkg/graphing"
	"ProcSampler/pkg/logging"
)

// NewGraphCmd creates the graph subcommand.
func NewGraphCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Aliases: []string{"g"},
		Use:     "graph <input-file>",
		Short:   "Generate interactive charts from a recorded file",
		Long: `Generate one HTML page with a line chart per recorded metric.

Supported input formats: csv, parquet

Example:
  procsampler graph run.csv
  procsampler graph run.parquet -o ./charts/run.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, cfg, args[0])
		},
	}

	cmd.Flags().StringVarP(&cfg.GraphOutput, "output", "o", "", "Output HTML file (input name with .html if empty)")

	return cmd
}

func runGraph(cmd *cobra.Command, cfg *config.Config, inputPath string) error {
	if err := logging.Setup(cfg.LogLevel); err != nil {
		return err
	}
	if _, err := os.Stat(inputPath); err != nil {
		return errors.Errorf("input file not found: %s", inputPath)
	}

	gen, err := graphing.NewGenerator(inputPath, cfg.GraphOutput, cfg.SessionID)
	if err != nil {
		return errors.Wrap(err, "failed to create generator")
	}
	if _, err := gen.Generate(); err != nil {
		return errors.Wrap(err, "failed to generate graphs")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated graphs in: %s\n", gen.OutputPath())
	return nil
}

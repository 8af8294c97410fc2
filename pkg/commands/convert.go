package commands

import (
	"fmt"
	"os"

	"emperror.dev/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ProcSampler/pkg/config"
	"ProcSampler/pkg/exporting"
	"ProcSampler/pkg/logging"
)

// NewConvertCmd creates the convert subcommand.
func NewConvertCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Aliases: []string{"c"},
		Use:     "convert <input.csv>",
		Short:   "Convert a recorded CSV file to Parquet",
		Long: `Convert a recorded CSV file into a Snappy-compressed Parquet file with
date and time as strings and every metric as a double.

Example:
  procsampler convert run.csv
  procsampler convert run.csv -o archive/run.parquet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, cfg, args[0])
		},
	}

	cmd.Flags().StringVarP(&cfg.ConvertOutput, "output", "o", "", "Output Parquet file (input name with .parquet if empty)")

	return cmd
}

func runConvert(cmd *cobra.Command, cfg *config.Config, inputPath string) error {
	if err := logging.Setup(cfg.LogLevel); err != nil {
		return err
	}
	if _, err := os.Stat(inputPath); err != nil {
		return errors.Errorf("input file not found: %s", inputPath)
	}

	output := cfg.ConvertOutput
	if output == "" {
		output = exporting.SwapExtension(inputPath, "parquet")
	}

	n, err := exporting.ConvertToParquet(inputPath, output)
	if err != nil {
		return errors.Wrapf(err, "failed to convert %s", inputPath)
	}
	log.WithFields(log.Fields{"rows": n, "output": output}).Info("Converted recording")
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", n, output)
	return nil
}

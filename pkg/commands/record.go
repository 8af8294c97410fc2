package commands

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"emperror.dev/errors"
	"github.com/spf13/cobra"

	"ProcSampler/pkg/collecting"
	"ProcSampler/pkg/config"
	"ProcSampler/pkg/exporting"
	"ProcSampler/pkg/logging"
	"ProcSampler/pkg/sampling"
)

func runRecord(cmd *cobra.Command, cfg *config.Config) error {
	if err := cfg.Load(cmd); err != nil {
		return err
	}
	if err := logging.Setup(cfg.LogLevel); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := logging.Session(cfg).WithField("pid", cfg.PID)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The target is resolved before the output is touched.
	manager, err := collecting.NewManager(ctx, collecting.Options{
		PID:            cfg.PID,
		Temperature:    cfg.CollectTemperature,
		GPUTemperature: cfg.CollectGPUTemperature,
		GPUIndex:       cfg.GPUIndex,
	})
	if err != nil {
		return err
	}

	opts := []sampling.Option{
		sampling.WithConsole(cmd.OutOrStdout()),
		sampling.WithLogger(logger),
	}
	if cfg.Persist() {
		rec, err := exporting.OpenRecorder(cfg.OutputFile,
			exporting.ColumnsFor(cfg.CollectTemperature, cfg.CollectGPUTemperature))
		if err != nil {
			_ = manager.Close()
			return err
		}
		opts = append(opts, sampling.WithSink(rec))
		logger.Infof("Appending %s to %s", strings.Join(rec.Columns(), ","), rec.Path())
	} else {
		logger.Info("No output file, printing samples only")
	}

	delay, err := newDelay(cfg)
	if err != nil {
		_ = manager.Close()
		return err
	}
	if cfg.Jitter {
		logger.Infof("Sampling with jitter in [%dms, %dms], --interval ignored", cfg.JitterMinMs, cfg.JitterMaxMs)
	} else {
		logger.Infof("Sampling every %v", cfg.Interval())
	}

	sampler := sampling.New(manager, delay, opts...)
	defer func() {
		if err := sampler.Close(); err != nil {
			logger.WithError(err).Warn("Failed to release resources")
		}
	}()

	return sampler.Run(ctx)
}

func newDelay(cfg *config.Config) (sampling.Delay, error) {
	if !cfg.Jitter {
		return sampling.Fixed{Interval: cfg.Interval()}, nil
	}
	j, err := sampling.NewJitter(
		time.Duration(cfg.JitterMinMs)*time.Millisecond,
		time.Duration(cfg.JitterMaxMs)*time.Millisecond,
		nil,
	)
	if err != nil {
		return nil, errors.Wrap(config.ErrInvalidConfig, err.Error())
	}
	return j, nil
}

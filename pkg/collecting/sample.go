package collecting

import (
	"context"
	"time"

	"ProcSampler/pkg/utils"
)

// Sample is one point-in-time measurement of the target. Optional fields are
// nil unless the variant collects them.
type Sample struct {
	Time               time.Time
	RAMPercent         float64
	CPUPercent         float64
	PackageTemperature *float64
	GPUTemperature     *float64
}

// Date renders the capture date as YYYY-MM-DD in local time.
func (s Sample) Date() string {
	return s.Time.Local().Format(utils.DateLayout)
}

// Clock renders the capture time as HH:MM:SS.mmm in local time.
func (s Sample) Clock() string {
	return s.Time.Local().Format(utils.TimeLayout)
}

// Options selects the optional metrics of a sample.
type Options struct {
	PID            uint32
	Temperature    bool
	GPUTemperature bool
	GPUIndex       int
	HwmonRoot      string
}

// Collect builds one sample. The timestamp is taken before any query so date
// and time come from the same instant. Queries run in a fixed order and the
// first failure aborts the sample; a partial sample is never returned.
func Collect(ctx context.Context, src Source, opts Options, now time.Time) (Sample, error) {
	s := Sample{Time: now}

	var err error
	if s.RAMPercent, err = src.MemoryPercent(ctx); err != nil {
		return Sample{}, queryError(src, opts.PID, MetricRAMPercent, err)
	}
	if s.CPUPercent, err = src.CPUPercent(ctx); err != nil {
		return Sample{}, queryError(src, opts.PID, MetricCPUPercent, err)
	}

	if opts.Temperature {
		t, err := src.PackageTemperature(ctx)
		if err != nil {
			return Sample{}, &QueryError{Metric: MetricPackageTemperature, PID: opts.PID, Err: err}
		}
		s.PackageTemperature = &t
	}

	if opts.GPUTemperature {
		t, err := src.GPUTemperature(ctx)
		if err != nil {
			return Sample{}, &QueryError{Metric: MetricGPUTemperature, PID: opts.PID, Err: err}
		}
		s.GPUTemperature = &t
	}

	return s, nil
}

// queryError checks liveness so a vanished target is reported as such.
func queryError(src Source, pid uint32, metric string, err error) error {
	return &QueryError{
		Metric:       metric,
		PID:          pid,
		TargetExited: !src.Alive(),
		Err:          err,
	}
}

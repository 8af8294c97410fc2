package collecting

import (
	"context"
	"time"

	"emperror.dev/errors"
	log "github.com/sirupsen/logrus"

	"ProcSampler/pkg/utils"
)

// Manager owns the process handle and the optional sensors, and builds samples from them.
type Manager struct {
	opts    Options
	process *ProcessCollector
	hwmon   *HwmonSensors
	nvidia  *NvidiaSensor
	now     func() time.Time
}

// NewManager resolves the target process and initializes the sensors the
// options ask for. Any failure here is fatal for the recorder.
//
// The CPU baseline is taken here, so the first sample reports utilization
// since start instead of the 0 a fresh handle returns.
func NewManager(ctx context.Context, opts Options) (*Manager, error) {
	proc, err := NewProcessCollector(ctx, opts.PID)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		opts:    opts,
		process: proc,
		now:     time.Now,
	}

	if _, err := proc.CPUPercent(ctx); err != nil {
		return nil, queryError(m, opts.PID, MetricCPUPercent, err)
	}

	if opts.Temperature {
		m.hwmon = NewHwmonSensors(opts.HwmonRoot)
		r, err := m.hwmon.Find(utils.PackageLabel)
		if err != nil {
			m.logAvailableSensors()
			return nil, &QueryError{Metric: MetricPackageTemperature, PID: opts.PID, Err: err}
		}
		log.Debugf("Package sensor: %s %q (%s)", r.Chip, r.Label, r.Input)
	}

	if opts.GPUTemperature {
		n, err := NewNvidiaSensor(opts.GPUIndex)
		if err != nil {
			return nil, &QueryError{Metric: MetricGPUTemperature, PID: opts.PID, Err: err}
		}
		m.nvidia = n
	}

	log.WithField("pid", proc.PID()).Debugf("Initialized collectors: %v", m.CollectorNames())
	return m, nil
}

func (m *Manager) logAvailableSensors() {
	readings, err := m.hwmon.Readings()
	if err != nil {
		return
	}
	for _, r := range readings {
		log.Debugf("Available sensor: %s %q = %.1f", r.Chip, r.Label, r.Celsius)
	}
}

// Collect builds one sample from the current instant.
func (m *Manager) Collect(ctx context.Context) (Sample, error) {
	return Collect(ctx, m, m.opts, m.now())
}

func (m *Manager) MemoryPercent(ctx context.Context) (float64, error) {
	return m.process.MemoryPercent(ctx)
}

func (m *Manager) CPUPercent(ctx context.Context) (float64, error) {
	return m.process.CPUPercent(ctx)
}

func (m *Manager) PackageTemperature(_ context.Context) (float64, error) {
	if m.hwmon == nil {
		return 0, errors.New("package temperature collection not enabled")
	}
	return m.hwmon.PackageTemperature()
}

func (m *Manager) GPUTemperature(_ context.Context) (float64, error) {
	if m.nvidia == nil {
		return 0, errors.New("gpu temperature collection not enabled")
	}
	return m.nvidia.Temperature()
}

func (m *Manager) Alive() bool {
	return m.process.Alive()
}

func (m *Manager) CollectorNames() []string {
	names := []string{m.process.Name()}
	if m.hwmon != nil {
		names = append(names, m.hwmon.Name())
	}
	if m.nvidia != nil {
		names = append(names, m.nvidia.Name())
	}
	return names
}

// Close releases the sensors. The process handle needs no teardown.
func (m *Manager) Close() error {
	if m.nvidia != nil {
		if err := m.nvidia.Close(); err != nil {
			log.Errorf("Error closing collector %s: %v", m.nvidia.Name(), err)
			return err
		}
	}
	return nil
}

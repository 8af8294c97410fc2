package collecting

import (
	"context"

	"emperror.dev/errors"
	"github.com/shirou/gopsutil/v4/process"

	"ProcSampler/pkg/utils"
)

// ProcessCollector holds the handle of the sampled process for the lifetime
// of the recorder. It is never re-acquired: once the pid goes away every
// query fails.
type ProcessCollector struct {
	pid  uint32
	proc *process.Process
}

// NewProcessCollector binds to pid, failing with ErrTargetNotFound when no
// such process is running.
func NewProcessCollector(ctx context.Context, pid uint32) (*ProcessCollector, error) {
	proc, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return nil, errors.WithDetails(errors.Wrapf(ErrTargetNotFound, "pid %d", pid), "pid", pid)
		}
		return nil, errors.WithDetails(errors.Wrapf(ErrTargetNotFound, "pid %d: %v", pid, err), "pid", pid)
	}

	return &ProcessCollector{pid: pid, proc: proc}, nil
}

func (c *ProcessCollector) Name() string { return "Process" }

// PID returns the bound process id.
func (c *ProcessCollector) PID() uint32 { return c.pid }

// MemoryPercent returns resident memory as a percentage of physical memory.
func (c *ProcessCollector) MemoryPercent(ctx context.Context) (float64, error) {
	v, err := c.proc.MemoryPercentWithContext(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return utils.WidenFloat32(v), nil
}

// CPUPercent returns CPU utilization since the previous call on this
// collector. The first call only records the baseline and returns 0.
func (c *ProcessCollector) CPUPercent(ctx context.Context) (float64, error) {
	v, err := c.proc.PercentWithContext(ctx, 0)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if v < 0 {
		v = 0
	}
	return v, nil
}

// Alive reports whether the pid still refers to a running process.
func (c *ProcessCollector) Alive() bool {
	return pidAlive(c.pid)
}

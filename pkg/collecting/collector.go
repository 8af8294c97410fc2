package collecting

import (
	"context"
	"fmt"

	"emperror.dev/errors"
)

const (
	// ErrTargetNotFound is returned at start when the pid is not a running process.
	ErrTargetNotFound = errors.Sentinel("target process not found")
	// ErrTargetExited marks a query failure that happened because the target went away.
	ErrTargetExited = errors.Sentinel("target process exited")
	// ErrSensorsUnavailable means the host exposes no thermal sensors at all.
	ErrSensorsUnavailable = errors.Sentinel("thermal sensors unavailable")
	// ErrSensorNotFound means no sensor label matched.
	ErrSensorNotFound = errors.Sentinel("thermal sensor not found")
)

// Source is the set of point-in-time queries a sample is built from.
// Each query may fail independently.
type Source interface {
	// MemoryPercent returns the target's resident memory as a percentage of total RAM.
	MemoryPercent(ctx context.Context) (float64, error)
	// CPUPercent returns the target's CPU utilization since the previous call.
	// 100 means one fully busy core, so the value exceeds 100 on multi-core saturation.
	CPUPercent(ctx context.Context) (float64, error)
	// PackageTemperature returns the CPU package temperature in Celsius. It is system-wide.
	PackageTemperature(ctx context.Context) (float64, error)
	// GPUTemperature returns the configured NVIDIA GPU temperature in Celsius.
	GPUTemperature(ctx context.Context) (float64, error)
	// Alive reports whether the target process still exists.
	Alive() bool
}

// QueryError names the metric whose query aborted a sample.
type QueryError struct {
	Metric       string
	PID          uint32
	TargetExited bool
	Err          error
}

func (e *QueryError) Error() string {
	if e.TargetExited {
		return fmt.Sprintf("read %s: process %d exited: %v", e.Metric, e.PID, e.Err)
	}
	return fmt.Sprintf("read %s: %v", e.Metric, e.Err)
}

func (e *QueryError) Unwrap() []error {
	if e.TargetExited {
		return []error{e.Err, ErrTargetExited}
	}
	return []error{e.Err}
}

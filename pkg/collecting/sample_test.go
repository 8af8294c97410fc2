package collecting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	ram, cpu, pkg, gpu             float64
	ramErr, cpuErr, pkgErr, gpuErr error
	dead                           bool
	calls                          []string
}

func (f *fakeSource) MemoryPercent(context.Context) (float64, error) {
	f.calls = append(f.calls, MetricRAMPercent)
	return f.ram, f.ramErr
}

func (f *fakeSource) CPUPercent(context.Context) (float64, error) {
	f.calls = append(f.calls, MetricCPUPercent)
	return f.cpu, f.cpuErr
}

func (f *fakeSource) PackageTemperature(context.Context) (float64, error) {
	f.calls = append(f.calls, MetricPackageTemperature)
	return f.pkg, f.pkgErr
}

func (f *fakeSource) GPUTemperature(context.Context) (float64, error) {
	f.calls = append(f.calls, MetricGPUTemperature)
	return f.gpu, f.gpuErr
}

func (f *fakeSource) Alive() bool { return !f.dead }

func TestCollectBaseVariant(t *testing.T) {
	src := &fakeSource{ram: 1.5, cpu: 150}
	now := time.Date(2024, 3, 9, 14, 5, 7, 123_000_000, time.Local)

	s, err := Collect(context.Background(), src, Options{PID: 10}, now)
	require.NoError(t, err)

	assert.Equal(t, 1.5, s.RAMPercent)
	assert.Equal(t, 150.0, s.CPUPercent)
	assert.Nil(t, s.PackageTemperature)
	assert.Nil(t, s.GPUTemperature)
	assert.Equal(t, "2024-03-09", s.Date())
	assert.Equal(t, "14:05:07.123", s.Clock())
	assert.Equal(t, []string{MetricRAMPercent, MetricCPUPercent}, src.calls)
}

func TestCollectAllMetricsInOrder(t *testing.T) {
	src := &fakeSource{ram: 2, cpu: 3, pkg: 47.5, gpu: 61}

	s, err := Collect(context.Background(), src, Options{Temperature: true, GPUTemperature: true}, time.Now())
	require.NoError(t, err)

	require.NotNil(t, s.PackageTemperature)
	require.NotNil(t, s.GPUTemperature)
	assert.Equal(t, 47.5, *s.PackageTemperature)
	assert.Equal(t, 61.0, *s.GPUTemperature)
	assert.Equal(t, []string{MetricRAMPercent, MetricCPUPercent, MetricPackageTemperature, MetricGPUTemperature}, src.calls)
}

func TestCollectAbortsOnFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name      string
		src       *fakeSource
		metric    string
		wantCalls int
	}{
		{"ram", &fakeSource{ramErr: boom}, MetricRAMPercent, 1},
		{"cpu", &fakeSource{cpuErr: boom}, MetricCPUPercent, 2},
		{"package", &fakeSource{pkgErr: boom}, MetricPackageTemperature, 3},
		{"gpu", &fakeSource{gpuErr: boom}, MetricGPUTemperature, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Collect(context.Background(), tt.src, Options{PID: 5, Temperature: true, GPUTemperature: true}, time.Now())
			require.Error(t, err)
			assert.Equal(t, Sample{}, s)
			assert.Len(t, tt.src.calls, tt.wantCalls)

			var qe *QueryError
			require.ErrorAs(t, err, &qe)
			assert.Equal(t, tt.metric, qe.Metric)
			assert.ErrorIs(t, err, boom)
			assert.Contains(t, err.Error(), tt.metric)
			assert.NotErrorIs(t, err, ErrTargetExited)
		})
	}
}

func TestCollectMarksExitedTarget(t *testing.T) {
	src := &fakeSource{ramErr: errors.New("no such file"), dead: true}

	_, err := Collect(context.Background(), src, Options{PID: 4321}, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTargetExited)
	assert.Contains(t, err.Error(), "process 4321 exited")
}

func TestCollectSkipsDisabledSensors(t *testing.T) {
	src := &fakeSource{pkgErr: errors.New("no sensors"), gpuErr: errors.New("no nvml")}

	_, err := Collect(context.Background(), src, Options{}, time.Now())
	assert.NoError(t, err)
}

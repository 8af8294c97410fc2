package graphing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProcSampler/pkg/collecting"
	"ProcSampler/pkg/exporting"
)

func writeRecording(t *testing.T, path string, n int) {
	t.Helper()
	r, err := exporting.OpenRecorder(path, exporting.ColumnsFor(true, false))
	require.NoError(t, err)
	defer r.Close()

	start := time.Date(2024, 3, 4, 12, 0, 0, 0, time.Local)
	for i := 0; i < n; i++ {
		temp := 40 + float64(i)
		require.NoError(t, r.Write(collecting.Sample{
			Time:               start.Add(time.Duration(i) * 250 * time.Millisecond),
			RAMPercent:         1.5,
			CPUPercent:         float64(i) * 12.5,
			PackageTemperature: &temp,
		}))
	}
}

func TestBuildSeries(t *testing.T) {
	header := []string{"date", "time", "ram_percent", "cpu_percent"}
	records := []exporting.Record{
		{"date": "2024-01-01", "time": "00:00:00.000", "ram_percent": 1.0, "cpu_percent": 5.0},
		{"date": "2024-01-01", "time": "00:00:01.000", "ram_percent": 2.0},
	}

	series := BuildSeries(header, records)
	require.Len(t, series, 2)
	assert.Equal(t, "ram_percent", series[0].Name)
	assert.Equal(t, []float64{1, 2}, series[0].Values)
	assert.Equal(t, []string{"2024-01-01 00:00:00.000", "2024-01-01 00:00:01.000"}, series[0].Labels)
	assert.Equal(t, []float64{5}, series[1].Values)
	assert.Equal(t, "%", series[1].unit())
}

func TestFormatName(t *testing.T) {
	assert.Equal(t, "RAM Percent", formatName("ram_percent"))
	assert.Equal(t, "Package Temperature", formatName("package_temperature"))
	assert.Equal(t, "GPU Temperature", formatName("gpu_temperature"))
}

func TestGenerateWritesHTML(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "run.csv")
	writeRecording(t, input, 5)

	g, err := NewGenerator(input, "", "session-1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run.html"), g.OutputPath())

	n, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	html, err := os.ReadFile(g.OutputPath())
	require.NoError(t, err)
	assert.Contains(t, string(html), "session-1")
	assert.Contains(t, string(html), "package_temperature")
	assert.Contains(t, string(html), "CPU Percent")
}

func TestGenerateFromParquet(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "run.csv")
	writeRecording(t, input, 3)
	pq := filepath.Join(dir, "run.parquet")
	_, err := exporting.ConvertToParquet(input, pq)
	require.NoError(t, err)

	g, err := NewGenerator(pq, filepath.Join(dir, "out", "graphs.html"), "")
	require.NoError(t, err)
	n, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.FileExists(t, filepath.Join(dir, "out", "graphs.html"))
}

func TestGenerateEmptyRecording(t *testing.T) {
	input := filepath.Join(t.TempDir(), "empty.csv")
	writeRecording(t, input, 0)

	g, err := NewGenerator(input, "", "")
	require.NoError(t, err)
	_, err = g.Generate()
	assert.ErrorIs(t, err, ErrNoData)
}

func TestNewGeneratorRequiresInput(t *testing.T) {
	_, err := NewGenerator("", "", "")
	assert.Error(t, err)
}

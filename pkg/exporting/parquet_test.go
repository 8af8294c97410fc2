package exporting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToParquet(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "out.csv")
	r, err := OpenRecorder(csvPath, ColumnsFor(true, false))
	require.NoError(t, err)

	start := time.Date(2024, 2, 3, 10, 0, 0, 0, time.Local)
	for i := 0; i < 4; i++ {
		require.NoError(t, r.Write(withTemperature(sampleAt(start.Add(time.Duration(i)*time.Second), 1.5, float64(i*10)), 44.5)))
	}
	require.NoError(t, r.Close())

	pqPath := filepath.Join(dir, "out.parquet")
	n, err := ConvertToParquet(csvPath, pqPath)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	names, records, err := ReadParquet(pqPath)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"date", "time", "ram_percent", "cpu_percent", "package_temperature"}, names)
	require.Len(t, records, 4)
	assert.Equal(t, "2024-02-03", records[0]["date"])
	assert.Equal(t, "10:00:03.000", records[3]["time"])
	assert.Equal(t, 30.0, records[3]["cpu_percent"])
	assert.Equal(t, 44.5, records[1]["package_temperature"])
}

func TestLoadRecordsByExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "out.csv")
	r, err := OpenRecorder(csvPath, ColumnsFor(false, false))
	require.NoError(t, err)
	require.NoError(t, r.Write(sampleAt(time.Now(), 2, 3)))
	require.NoError(t, r.Close())

	header, records, err := LoadRecords(csvPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "time", "ram_percent", "cpu_percent"}, header)
	assert.Len(t, records, 1)

	pqPath := SwapExtension(csvPath, "parquet")
	assert.Equal(t, filepath.Join(dir, "out.parquet"), pqPath)
	_, err = ConvertToParquet(csvPath, pqPath)
	require.NoError(t, err)

	_, records, err = LoadRecords(pqPath)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	txt := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0644))
	_, _, err = LoadRecords(txt)
	assert.Error(t, err)
}

func TestConvertRejectsNonNumericMetric(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("date,time,ram_percent,cpu_percent\n2024-01-01,00:00:00.000,abc,1\n"), 0644))

	_, err := ConvertToParquet(csvPath, filepath.Join(dir, "bad.parquet"))
	assert.Error(t, err)
}

package exporting

import (
	"slices"

	"ProcSampler/pkg/collecting"
	"ProcSampler/pkg/utils"
)

const (
	ColumnDate = "date"
	ColumnTime = "time"
)

// Columns is the fixed, ordered column set of one recorder variant.
// A file must only ever hold rows of a single variant.
type Columns []string

// ColumnsFor returns date,time,ram_percent,cpu_percent followed by the
// optional temperature columns in that order.
func ColumnsFor(temperature, gpuTemperature bool) Columns {
	cols := Columns{ColumnDate, ColumnTime, collecting.MetricRAMPercent, collecting.MetricCPUPercent}
	if temperature {
		cols = append(cols, collecting.MetricPackageTemperature)
	}
	if gpuTemperature {
		cols = append(cols, collecting.MetricGPUTemperature)
	}
	return cols
}

// Equal reports whether header lists exactly these columns in this order.
func (c Columns) Equal(header []string) bool {
	return slices.Equal(c, header)
}

// Row serializes a sample in column order.
func (c Columns) Row(s collecting.Sample) []string {
	row := make([]string, len(c))
	for i, name := range c {
		switch name {
		case ColumnDate:
			row[i] = s.Date()
		case ColumnTime:
			row[i] = s.Clock()
		case collecting.MetricRAMPercent:
			row[i] = utils.FormatValue(s.RAMPercent)
		case collecting.MetricCPUPercent:
			row[i] = utils.FormatValue(s.CPUPercent)
		case collecting.MetricPackageTemperature:
			row[i] = utils.FormatValue(s.PackageTemperature)
		case collecting.MetricGPUTemperature:
			row[i] = utils.FormatValue(s.GPUTemperature)
		}
	}
	return row
}

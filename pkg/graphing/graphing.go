// Package graphing renders recorded samples as an interactive HTML page.
package graphing

import (
	"os"
	"path/filepath"
	"strings"

	"emperror.dev/errors"
	"github.com/go-echarts/go-echarts/v2/components"
	log "github.com/sirupsen/logrus"

	"ProcSampler/pkg/collecting"
	"ProcSampler/pkg/exporting"
	"ProcSampler/pkg/utils"
)

const seriesCPU = collecting.MetricCPUPercent

// ErrNoData is returned when a file holds no numeric column with at least one row.
const ErrNoData = errors.Sentinel("no chartable data")

// Series is one numeric column keyed by its "date time" labels.
type Series struct {
	Name   string
	Labels []string
	Values []float64
}

func (s *Series) unit() string {
	switch {
	case strings.HasSuffix(s.Name, "_percent"):
		return "%"
	case strings.HasSuffix(s.Name, "_temperature"):
		return "°C"
	default:
		return ""
	}
}

// Generator renders one recorded file into one HTML page.
type Generator struct {
	inputPath  string
	outputPath string
	sessionID  string
}

// NewGenerator creates a generator. An empty outputPath writes next to the input
// with an .html extension.
func NewGenerator(inputPath, outputPath, sessionID string) (*Generator, error) {
	if inputPath == "" {
		return nil, errors.New("input path is required")
	}
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".html"
	}
	if sessionID == "" {
		sessionID = utils.NewSessionID()
	}
	return &Generator{inputPath: inputPath, outputPath: outputPath, sessionID: sessionID}, nil
}

// OutputPath returns where Generate writes the page.
func (g *Generator) OutputPath() string {
	return g.outputPath
}

// Generate loads the input, builds one line chart per numeric column and
// writes the page. It returns the number of charts rendered.
func (g *Generator) Generate() (int, error) {
	header, records, err := exporting.LoadRecords(g.inputPath)
	if err != nil {
		return 0, errors.Wrap(err, "failed to load records")
	}

	series := BuildSeries(header, records)
	if len(series) == 0 {
		return 0, errors.WithDetails(ErrNoData, "file", g.inputPath)
	}

	page := components.NewPage()
	page.PageTitle = utils.DefaultGraphTitle + " - " + g.sessionID
	for _, s := range series {
		page.AddCharts(createLineChart(s))
	}

	if dir := filepath.Dir(g.outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, errors.Wrap(err, "failed to create output directory")
		}
	}

	f, err := os.Create(g.outputPath)
	if err != nil {
		return 0, errors.Wrap(err, "failed to create output file")
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return 0, errors.Wrap(err, "failed to render charts")
	}

	log.WithFields(log.Fields{"output": g.outputPath, "charts": len(series)}).Info("Generated graphs")
	return len(series), nil
}

// BuildSeries collects every numeric column in header order. Date and time
// become the shared x-axis label.
func BuildSeries(header []string, records []exporting.Record) []*Series {
	labels := make([]string, len(records))
	for i, r := range records {
		labels[i] = label(r)
	}

	var out []*Series
	for _, name := range header {
		if name == exporting.ColumnDate || name == exporting.ColumnTime {
			continue
		}
		s := &Series{Name: name}
		for i, r := range records {
			v, ok := utils.ToFloat64Ok(r[name])
			if !ok {
				continue
			}
			s.Labels = append(s.Labels, labels[i])
			s.Values = append(s.Values, v)
		}
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func label(r exporting.Record) string {
	date, _ := r[exporting.ColumnDate].(string)
	clock, _ := r[exporting.ColumnTime].(string)
	return strings.TrimSpace(date + " " + clock)
}

// formatName converts a column name to a chart title.
func formatName(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if p == "cpu" || p == "ram" || p == "gpu" {
			parts[i] = strings.ToUpper(p)
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

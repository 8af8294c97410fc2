package sampling

import (
	"fmt"
	"io"
	"strings"

	"ProcSampler/pkg/collecting"
)

// FormatLine renders a sample for the console. Percentages are right-aligned
// in a fixed width; temperatures are appended only when present.
func FormatLine(s collecting.Sample) string {
	var b strings.Builder
	fmt.Fprintf(&b, "RAM: %6.2f%%\t\tCPU: %6.2f%%", s.RAMPercent, s.CPUPercent)
	if s.PackageTemperature != nil {
		fmt.Fprintf(&b, "\t\tTemperature: %.1f", *s.PackageTemperature)
	}
	if s.GPUTemperature != nil {
		fmt.Fprintf(&b, "\t\tGPU: %.1f", *s.GPUTemperature)
	}
	return b.String()
}

func printLine(w io.Writer, s collecting.Sample) {
	if w == nil {
		return
	}
	fmt.Fprintln(w, FormatLine(s))
}

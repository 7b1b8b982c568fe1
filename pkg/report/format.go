package report

import (
	"fmt"
	"strings"
	"time"
)

// FormatRunReport renders a run manifest for terminal output.
func FormatRunReport(manifest *RunManifest) string {
	var builder strings.Builder

	builder.WriteString("\nReport Build Summary\n")
	builder.WriteString(strings.Repeat("═", 60) + "\n")

	builder.WriteString(fmt.Sprintf("  Run ID:     %s\n", manifest.ID))
	builder.WriteString(fmt.Sprintf("  Started:    %s\n", manifest.StartedAt.Format("2006-01-02 15:04:05 MST")))
	if !manifest.FinishedAt.IsZero() {
		builder.WriteString(fmt.Sprintf("  Duration:   %s\n", manifest.RunDuration().Round(time.Millisecond)))
	}
	gateStatus := "FAIL"
	if manifest.GatesPassed {
		gateStatus = "PASS"
	}
	builder.WriteString(fmt.Sprintf("  Gates:      %s\n", gateStatus))
	builder.WriteString(fmt.Sprintf("  Panel:      %d rows x %d columns (%d skipped)\n",
		manifest.PanelShape.Rows, manifest.PanelShape.Columns, manifest.SkippedPanelRows))
	builder.WriteString(fmt.Sprintf("  Window:     %d-%d\n", manifest.WindowStart, manifest.WindowEnd))
	builder.WriteString(fmt.Sprintf("  Laws:       %d countries resolved, %d names unmatched, %d rows dropped\n",
		manifest.Resolution.ResolvedCountries, manifest.Resolution.UnmatchedNames, manifest.Resolution.DroppedRows))

	if len(manifest.Inputs) > 0 {
		builder.WriteString("\nInputs:\n")
		for _, input := range manifest.Inputs {
			builder.WriteString(fmt.Sprintf("  %-12s %-50s %s\n",
				input.Role, truncatePath(input.Path, 50), FormatBytes(input.SizeBytes)))
		}
	}

	if len(manifest.Series) > 0 {
		builder.WriteString("\nSeries:\n")
		for _, series := range manifest.Series {
			builder.WriteString(fmt.Sprintf("  %-16s %-12s %d cells\n",
				series.Name, series.Kind, series.Cells))
		}
	}

	if len(manifest.Figures) > 0 {
		builder.WriteString("\nFigures:\n")
		for _, figure := range manifest.Figures {
			builder.WriteString(fmt.Sprintf("  %-20s %-4s %-45s %s\n",
				figure.Figure, figure.Format, truncatePath(figure.Path, 45), FormatBytes(figure.SizeBytes)))
		}
	}

	return builder.String()
}

// FormatBytes converts a byte count to a human-readable size.
func FormatBytes(byteCount int64) string {
	switch {
	case byteCount >= 1024*1024*1024:
		return fmt.Sprintf("%.1f GB", float64(byteCount)/(1024*1024*1024))
	case byteCount >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(byteCount)/(1024*1024))
	case byteCount >= 1024:
		return fmt.Sprintf("%.1f KB", float64(byteCount)/1024)
	default:
		return fmt.Sprintf("%d B", byteCount)
	}
}

// truncatePath shortens a path from the left so the file name stays visible.
func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

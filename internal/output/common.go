package output

import (
	"io"
	"os"
)

const (
	reportDateLayout     = "2006-01-02"
	reportDateTimeLayout = "2006-01-02T15:04:05"
)

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

// versionOf maps a lineage position (newest first) onto its snapshot
// version index (oldest is 1).
func versionOf(total, position int) int {
	return total - position
}

// renamedAt reports whether the entry at position carries a different
// name than the next newer entry.
func renamedAt(report *LineageReport, position int) bool {
	if position == 0 {
		return false
	}
	return report.History[position].Path != report.History[position-1].Path
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// CILineageWriter writes lineage reports as NDJSON (one JSON object per line) for CI pipelines.
type CILineageWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type          string   `json:"type"`
	File          string   `json:"file"`
	TotalVersions int      `json:"totalVersions"`
	Names         []string `json:"names"`
	Renames       int      `json:"renames"`
}

// CIVersionEntry represents a single version entry in CI output.
type CIVersionEntry struct {
	Type    string `json:"type"`
	Version int    `json:"version"`
	SHA     string `json:"sha"`
	When    string `json:"when"`
	Path    string `json:"path"`
	Renamed bool   `json:"renamed,omitempty"`
}

// Write outputs the lineage report as NDJSON.
func (w *CILineageWriter) Write(report *LineageReport, options OutputOptions) error {
	items := limitTop(report.History, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Write summary line
	summary := CISummary{
		Type:          "summary",
		File:          report.FilePath,
		TotalVersions: len(report.History),
		Names:         report.History.Paths(),
		Renames:       report.History.Renames(),
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	// Write version entries
	total := len(report.History)
	for i, entry := range items {
		version := CIVersionEntry{
			Type:    "version",
			Version: versionOf(total, i),
			SHA:     entry.Commit.SHA,
			When:    entry.Commit.When.Format(time.RFC3339),
			Path:    entry.Path,
			Renamed: renamedAt(report, i),
		}
		if err := writeNDJSONLine(out, version); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

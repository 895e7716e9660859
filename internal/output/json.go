package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// JSONLineageWriter writes lineage reports as JSON.
type JSONLineageWriter struct{}

// JSONLineageReport is the JSON output structure for a lineage report.
type JSONLineageReport struct {
	RepoPath      string            `json:"repo"`
	FilePath      string            `json:"file"`
	GeneratedAt   string            `json:"generatedAt"`
	TotalVersions int               `json:"totalVersions"`
	Names         []string          `json:"names"`
	Items         []JSONLineageItem `json:"items"`
}

// JSONLineageItem is the JSON output structure for a single lineage entry.
type JSONLineageItem struct {
	Version int    `json:"version"`
	SHA     string `json:"sha"`
	When    string `json:"when"`
	Author  string `json:"author"`
	Email   string `json:"email"`
	Path    string `json:"path"`
	Message string `json:"message"`
	// Renamed marks the last commit under an older name: the file moved
	// to its next newer name after this commit.
	Renamed bool `json:"renamed,omitempty"`
}

// Write outputs the lineage report as JSON.
func (w *JSONLineageWriter) Write(report *LineageReport, options OutputOptions) error {
	items := limitTop(report.History, options.Top)

	total := len(report.History)
	jsonItems := make([]JSONLineageItem, len(items))
	for i, entry := range items {
		jsonItems[i] = JSONLineageItem{
			Version: versionOf(total, i),
			SHA:     entry.Commit.SHA,
			When:    entry.Commit.When.Format(time.RFC3339),
			Author:  entry.Commit.Author.Name,
			Email:   entry.Commit.Author.Email,
			Path:    entry.Path,
			Message: entry.Commit.Message,
			Renamed: renamedAt(report, i),
		}
	}

	jsonReport := JSONLineageReport{
		RepoPath:      report.RepoPath,
		FilePath:      report.FilePath,
		GeneratedAt:   report.GeneratedAt.Format(time.RFC3339),
		TotalVersions: total,
		Names:         report.History.Paths(),
		Items:         jsonItems,
	}

	return writeJSON(jsonReport, options.OutputPath)
}

// JSONEvolutionWriter writes evolution reports as JSON.
type JSONEvolutionWriter struct{}

// JSONEvolutionReport is the JSON output structure for an evolution report.
type JSONEvolutionReport struct {
	RepoPath      string               `json:"repo"`
	FilePath      string               `json:"file"`
	GeneratedAt   string               `json:"generatedAt"`
	TotalVersions int                  `json:"totalVersions"`
	Summary       JSONEvolutionSummary `json:"summary"`
	Items         []JSONEvolutionItem  `json:"items"`
}

// JSONEvolutionSummary is the JSON output structure for aggregate statistics.
type JSONEvolutionSummary struct {
	LinesAdded   int     `json:"linesAdded"`
	LinesDeleted int     `json:"linesDeleted"`
	BurstScore   float64 `json:"burstScore"`
	ChurnEntropy float64 `json:"churnEntropy"`
}

// JSONEvolutionItem is the JSON output structure for a single version delta.
type JSONEvolutionItem struct {
	Version      int    `json:"version"`
	SHA          string `json:"sha"`
	When         string `json:"when"`
	Path         string `json:"path"`
	Message      string `json:"message"`
	Lines        int    `json:"lines"`
	LinesAdded   int    `json:"linesAdded"`
	LinesDeleted int    `json:"linesDeleted"`
	Hunks        int    `json:"hunks"`
	PathChanged  bool   `json:"pathChanged,omitempty"`
	Binary       bool   `json:"binary,omitempty"`
	Missing      bool   `json:"missing,omitempty"`
}

// Write outputs the evolution report as JSON.
func (w *JSONEvolutionWriter) Write(report *EvolutionReport, options OutputOptions) error {
	versions := limitTop(report.Versions, options.Top)

	jsonItems := make([]JSONEvolutionItem, len(versions))
	for i, v := range versions {
		jsonItems[i] = JSONEvolutionItem{
			Version:      v.Index,
			SHA:          v.Entry.Commit.SHA,
			When:         v.Entry.Commit.When.Format(time.RFC3339),
			Path:         v.Entry.Path,
			Message:      v.Entry.Commit.Message,
			Lines:        v.Lines,
			LinesAdded:   v.LinesAdded,
			LinesDeleted: v.LinesDeleted,
			Hunks:        v.Hunks,
			PathChanged:  v.PathChanged,
			Binary:       v.Binary,
			Missing:      v.Missing,
		}
	}

	jsonReport := JSONEvolutionReport{
		RepoPath:      report.RepoPath,
		FilePath:      report.FilePath,
		GeneratedAt:   report.GeneratedAt.Format(time.RFC3339),
		TotalVersions: len(report.Versions),
		Summary: JSONEvolutionSummary{
			LinesAdded:   report.Summary.LinesAdded,
			LinesDeleted: report.Summary.LinesDeleted,
			BurstScore:   report.Summary.BurstScore,
			ChurnEntropy: report.Summary.ChurnEntropy,
		},
		Items: jsonItems,
	}

	return writeJSON(jsonReport, options.OutputPath)
}

func writeJSON(data interface{}, outputPath string) error {
	encoder := json.NewEncoder(os.Stdout)
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		encoder = json.NewEncoder(file)
	}

	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

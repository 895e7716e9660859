package output

import (
	"time"

	"github.com/filetrail/filetrail/internal/evolution"
	"github.com/filetrail/filetrail/internal/lineage"
)

// Compile-time interface conformance checks.
// These ensure that all writer types correctly implement their respective interfaces.
var (
	// LineageReportWriter implementations
	_ LineageReportWriter = (*ConsoleLineageWriter)(nil)
	_ LineageReportWriter = (*JSONLineageWriter)(nil)
	_ LineageReportWriter = (*CSVLineageWriter)(nil)
	_ LineageReportWriter = (*MarkdownLineageWriter)(nil)
	_ LineageReportWriter = (*CILineageWriter)(nil)

	// EvolutionReportWriter implementations
	_ EvolutionReportWriter = (*ConsoleEvolutionWriter)(nil)
	_ EvolutionReportWriter = (*JSONEvolutionWriter)(nil)
	_ EvolutionReportWriter = (*CSVEvolutionWriter)(nil)
	_ EvolutionReportWriter = (*MarkdownEvolutionWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
	Detail     bool
}

// LineageReport holds a file's recovered history, newest version first.
type LineageReport struct {
	RepoPath    string
	FilePath    string
	GeneratedAt time.Time
	History     lineage.History
}

// EvolutionReport holds per-version line deltas, oldest version first.
type EvolutionReport struct {
	RepoPath    string
	FilePath    string
	GeneratedAt time.Time
	Versions    []evolution.VersionDelta
	Summary     evolution.Summary
}

// LineageReportWriter writes lineage reports.
type LineageReportWriter interface {
	Write(report *LineageReport, options OutputOptions) error
}

// EvolutionReportWriter writes evolution reports.
type EvolutionReportWriter interface {
	Write(report *EvolutionReport, options OutputOptions) error
}

// NewLineageReportWriter creates a lineage report writer for the specified format.
func NewLineageReportWriter(format OutputFormat) LineageReportWriter {
	switch format {
	case FormatJSON:
		return &JSONLineageWriter{}
	case FormatCSV:
		return &CSVLineageWriter{}
	case FormatMarkdown:
		return &MarkdownLineageWriter{}
	case FormatCI:
		return &CILineageWriter{}
	default:
		return &ConsoleLineageWriter{}
	}
}

// NewEvolutionReportWriter creates an evolution report writer for the specified format.
func NewEvolutionReportWriter(format OutputFormat) EvolutionReportWriter {
	switch format {
	case FormatJSON:
		return &JSONEvolutionWriter{}
	case FormatCSV:
		return &CSVEvolutionWriter{}
	case FormatMarkdown:
		return &MarkdownEvolutionWriter{}
	default:
		return &ConsoleEvolutionWriter{}
	}
}

package output

import "testing"

func TestNewLineageReportWriter(t *testing.T) {
	tests := []struct {
		name   string
		format OutputFormat
	}{
		{name: "Console", format: FormatConsole},
		{name: "JSON", format: FormatJSON},
		{name: "CSV", format: FormatCSV},
		{name: "Markdown", format: FormatMarkdown},
		{name: "CI", format: FormatCI},
		{name: "Unknown defaults to Console", format: "unknown"},
		{name: "Empty defaults to Console", format: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := NewLineageReportWriter(tt.format)
			if writer == nil {
				t.Fatal("NewLineageReportWriter returned nil")
			}

			switch tt.format {
			case FormatJSON:
				if _, ok := writer.(*JSONLineageWriter); !ok {
					t.Errorf("Expected *JSONLineageWriter for format %q", tt.format)
				}
			case FormatCSV:
				if _, ok := writer.(*CSVLineageWriter); !ok {
					t.Errorf("Expected *CSVLineageWriter for format %q", tt.format)
				}
			case FormatMarkdown:
				if _, ok := writer.(*MarkdownLineageWriter); !ok {
					t.Errorf("Expected *MarkdownLineageWriter for format %q", tt.format)
				}
			case FormatCI:
				if _, ok := writer.(*CILineageWriter); !ok {
					t.Errorf("Expected *CILineageWriter for format %q", tt.format)
				}
			default:
				if _, ok := writer.(*ConsoleLineageWriter); !ok {
					t.Errorf("Expected *ConsoleLineageWriter for format %q", tt.format)
				}
			}
		})
	}
}

func TestNewEvolutionReportWriter(t *testing.T) {
	tests := []struct {
		name   string
		format OutputFormat
	}{
		{name: "Console", format: FormatConsole},
		{name: "JSON", format: FormatJSON},
		{name: "CSV", format: FormatCSV},
		{name: "Markdown", format: FormatMarkdown},
		{name: "CI falls back to Console", format: FormatCI},
		{name: "Unknown defaults to Console", format: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := NewEvolutionReportWriter(tt.format)
			if writer == nil {
				t.Fatal("NewEvolutionReportWriter returned nil")
			}

			switch tt.format {
			case FormatJSON:
				if _, ok := writer.(*JSONEvolutionWriter); !ok {
					t.Errorf("Expected *JSONEvolutionWriter for format %q", tt.format)
				}
			case FormatCSV:
				if _, ok := writer.(*CSVEvolutionWriter); !ok {
					t.Errorf("Expected *CSVEvolutionWriter for format %q", tt.format)
				}
			case FormatMarkdown:
				if _, ok := writer.(*MarkdownEvolutionWriter); !ok {
					t.Errorf("Expected *MarkdownEvolutionWriter for format %q", tt.format)
				}
			default:
				if _, ok := writer.(*ConsoleEvolutionWriter); !ok {
					t.Errorf("Expected *ConsoleEvolutionWriter for format %q", tt.format)
				}
			}
		})
	}
}

package output

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVLineageWriter writes lineage reports as CSV.
type CSVLineageWriter struct{}

// Write outputs the lineage report as CSV.
func (w *CSVLineageWriter) Write(report *LineageReport, options OutputOptions) error {
	items := limitTop(report.History, options.Top)

	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Write header
	headers := []string{"Version", "SHA", "When", "Author", "Email", "Path", "Renamed", "Message"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	// Write data
	total := len(report.History)
	for i, entry := range items {
		row := []string{
			fmt.Sprintf("%d", versionOf(total, i)),
			entry.Commit.SHA,
			entry.Commit.When.Format(reportDateTimeLayout),
			entry.Commit.Author.Name,
			entry.Commit.Author.Email,
			entry.Path,
			fmt.Sprintf("%t", renamedAt(report, i)),
			entry.Commit.Message,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVEvolutionWriter writes evolution reports as CSV.
type CSVEvolutionWriter struct{}

// Write outputs the evolution report as CSV.
func (w *CSVEvolutionWriter) Write(report *EvolutionReport, options OutputOptions) error {
	versions := limitTop(report.Versions, options.Top)

	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Write header
	headers := []string{"Version", "SHA", "When", "Path", "Lines", "LinesAdded",
		"LinesDeleted", "Hunks", "PathChanged", "Binary", "Missing"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	// Write data
	for _, v := range versions {
		row := []string{
			fmt.Sprintf("%d", v.Index),
			v.Entry.Commit.SHA,
			v.Entry.Commit.When.Format(reportDateTimeLayout),
			v.Entry.Path,
			fmt.Sprintf("%d", v.Lines),
			fmt.Sprintf("%d", v.LinesAdded),
			fmt.Sprintf("%d", v.LinesDeleted),
			fmt.Sprintf("%d", v.Hunks),
			fmt.Sprintf("%t", v.PathChanged),
			fmt.Sprintf("%t", v.Binary),
			fmt.Sprintf("%t", v.Missing),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}

package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// MarkdownLineageWriter writes lineage reports as Markdown.
type MarkdownLineageWriter struct{}

// Write outputs the lineage report as Markdown.
func (w *MarkdownLineageWriter) Write(report *LineageReport, options OutputOptions) error {
	items := limitTop(report.History, options.Top)

	out, file, err := createWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Header
	fmt.Fprintln(out, "# File Lineage")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.RepoPath)
	fmt.Fprintf(out, "**File:** `%s`\n\n", report.FilePath)
	fmt.Fprintf(out, "**Generated:** %s\n\n", report.GeneratedAt.Format(reportDateLayout))
	fmt.Fprintf(out, "**Total Versions:** %d\n\n", len(report.History))

	names := report.History.Paths()
	if len(names) > 1 {
		quoted := make([]string, len(names))
		for i, name := range names {
			quoted[i] = "`" + name + "`"
		}
		fmt.Fprintf(out, "**Known Names:** %s\n\n", strings.Join(quoted, ", "))
	}

	if len(report.History) == 0 {
		fmt.Fprintln(out, "No history found.")
		return nil
	}

	// Table header
	fmt.Fprintln(out, "## Version History")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "| Ver | SHA | Date | Author | Path | Message |")
	fmt.Fprintln(out, "|-----|-----|------|--------|------|---------|")

	// Table rows
	total := len(report.History)
	for i, entry := range items {
		pathCell := "`" + entry.Path + "`"
		if renamedAt(report, i) {
			pathCell += " \\*"
		}
		escapedMsg := escapeMarkdown(entry.Commit.Message)
		if len(escapedMsg) > 40 {
			escapedMsg = escapedMsg[:37] + "..."
		}
		fmt.Fprintf(out, "| %d | `%s` | %s | %s | %s | %s |\n",
			versionOf(total, i), entry.Commit.ShortSHA(),
			entry.Commit.When.Format(reportDateLayout),
			escapeMarkdown(entry.Commit.Author.Name), pathCell, escapedMsg)
	}

	if len(names) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "\\* path changed after this commit")
	}

	return nil
}

// MarkdownEvolutionWriter writes evolution reports as Markdown.
type MarkdownEvolutionWriter struct{}

// Write outputs the evolution report as Markdown.
func (w *MarkdownEvolutionWriter) Write(report *EvolutionReport, options OutputOptions) error {
	versions := limitTop(report.Versions, options.Top)

	out, file, err := createWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Header
	fmt.Fprintln(out, "# File Evolution")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.RepoPath)
	fmt.Fprintf(out, "**File:** `%s`\n\n", report.FilePath)
	fmt.Fprintf(out, "**Generated:** %s\n\n", report.GeneratedAt.Format(reportDateLayout))
	fmt.Fprintf(out, "**Versions Analyzed:** %d\n\n", len(report.Versions))

	if len(report.Versions) == 0 {
		fmt.Fprintln(out, "No versions to analyze.")
		return nil
	}

	// Table header
	fmt.Fprintln(out, "## Version Deltas")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "| Ver | SHA | Date | Path | Lines | Added | Deleted | Hunks | Message |")
	fmt.Fprintln(out, "|-----|-----|------|------|-------|-------|---------|-------|---------|")

	// Table rows
	for _, v := range versions {
		lines := fmt.Sprintf("%d", v.Lines)
		added := fmt.Sprintf("+%d", v.LinesAdded)
		deleted := fmt.Sprintf("-%d", v.LinesDeleted)
		switch {
		case v.Missing:
			lines, added, deleted = "missing", "", ""
		case v.Binary:
			lines, added, deleted = "binary", "", ""
		}
		pathCell := "`" + v.Entry.Path + "`"
		if v.PathChanged {
			pathCell += " \\*"
		}
		escapedMsg := escapeMarkdown(v.Entry.Commit.Message)
		if len(escapedMsg) > 40 {
			escapedMsg = escapedMsg[:37] + "..."
		}
		fmt.Fprintf(out, "| %d | `%s` | %s | %s | %s | %s | %s | %d | %s |\n",
			v.Index, v.Entry.Commit.ShortSHA(),
			v.Entry.Commit.When.Format(reportDateLayout),
			pathCell, lines, added, deleted, v.Hunks, escapedMsg)
	}

	s := report.Summary
	fmt.Fprintln(out)
	fmt.Fprintln(out, "## Summary")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "- **Total Churn:** +%d / -%d lines\n", s.LinesAdded, s.LinesDeleted)
	fmt.Fprintf(out, "- **Burst Score:** %.2f\n", s.BurstScore)
	fmt.Fprintf(out, "- **Churn Entropy:** %.2f\n", s.ChurnEntropy)

	return nil
}

func createWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return file, file, nil
	}
	return os.Stdout, nil, nil
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}

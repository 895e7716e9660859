package output

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleLineageWriter writes lineage reports to the console.
type ConsoleLineageWriter struct{}

// Write outputs the lineage report to the console.
func (w *ConsoleLineageWriter) Write(report *LineageReport, options OutputOptions) error {
	items := limitTop(report.History, options.Top)

	color.Green("File Lineage")
	fmt.Printf("Repository: %s\n", report.RepoPath)
	fmt.Printf("File: %s\n", report.FilePath)
	names := report.History.Paths()
	fmt.Printf("Versions: %d across %d name(s)\n\n", len(report.History), len(names))

	if len(report.History) == 0 {
		fmt.Println("No history found.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	// Write header
	if options.Detail {
		fmt.Fprintln(tw, "Ver\tSHA\tDate\tAuthor\tEmail\tPath\tMessage")
	} else {
		fmt.Fprintln(tw, "Ver\tSHA\tDate\tAuthor\tPath\tMessage")
	}

	// Write rows
	total := len(report.History)
	for i, entry := range items {
		path := entry.Path
		if renamedAt(report, i) {
			path = color.YellowString(path + " *")
		}
		if options.Detail {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				versionOf(total, i),
				entry.Commit.SHA,
				entry.Commit.When.Format(reportDateLayout),
				entry.Commit.Author.Name,
				entry.Commit.Author.Email,
				path,
				truncateMessage(entry.Commit.Message, 40),
			)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				versionOf(total, i),
				entry.Commit.ShortSHA(),
				entry.Commit.When.Format(reportDateLayout),
				entry.Commit.Author.Name,
				path,
				truncateMessage(entry.Commit.Message, 40),
			)
		}
	}

	tw.Flush()

	if len(names) > 1 {
		fmt.Println("\n* path changed after this commit")
	}

	return nil
}

// ConsoleEvolutionWriter writes evolution reports to the console.
type ConsoleEvolutionWriter struct{}

// Write outputs the evolution report to the console.
func (w *ConsoleEvolutionWriter) Write(report *EvolutionReport, options OutputOptions) error {
	versions := limitTop(report.Versions, options.Top)

	color.Green("File Evolution")
	fmt.Printf("Repository: %s\n", report.RepoPath)
	fmt.Printf("File: %s\n", report.FilePath)
	fmt.Printf("Versions analyzed: %d\n\n", len(report.Versions))

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	// Write header
	if options.Detail {
		fmt.Fprintln(tw, "Ver\tSHA\tDate\tPath\tLines\tAdded\tDeleted\tHunks\tMessage")
	} else {
		fmt.Fprintln(tw, "Ver\tSHA\tDate\tPath\tLines\tAdded\tDeleted\tMessage")
	}

	// Write rows
	for _, v := range versions {
		added := fmt.Sprintf("+%d", v.LinesAdded)
		deleted := fmt.Sprintf("-%d", v.LinesDeleted)
		switch {
		case v.Missing:
			added, deleted = color.RedString("missing"), ""
		case v.Binary:
			added, deleted = "binary", ""
		default:
			if v.LinesAdded > 0 {
				added = color.GreenString(added)
			}
			if v.LinesDeleted > 0 {
				deleted = color.RedString(deleted)
			}
		}
		path := v.Entry.Path
		if v.PathChanged {
			path = color.YellowString(path + " *")
		}
		if options.Detail {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\t%d\t%s\n",
				v.Index,
				v.Entry.Commit.ShortSHA(),
				v.Entry.Commit.When.Format(reportDateLayout),
				path,
				v.Lines,
				added,
				deleted,
				v.Hunks,
				truncateMessage(v.Entry.Commit.Message, 40),
			)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
				v.Index,
				v.Entry.Commit.ShortSHA(),
				v.Entry.Commit.When.Format(reportDateLayout),
				path,
				v.Lines,
				added,
				deleted,
				truncateMessage(v.Entry.Commit.Message, 40),
			)
		}
	}

	tw.Flush()

	s := report.Summary
	fmt.Printf("\nTotal churn: %s %s across %d version(s)\n",
		color.GreenString("+%d", s.LinesAdded),
		color.RedString("-%d", s.LinesDeleted),
		s.TotalVersions,
	)
	fmt.Printf("Activity: burst %.2f, churn entropy %.2f\n", s.BurstScore, s.ChurnEntropy)

	return nil
}

// Helper functions

func truncateMessage(msg string, maxLen int) string {
	if len(msg) <= maxLen {
		return msg
	}
	return msg[:maxLen-3] + "..."
}

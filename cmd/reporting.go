package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/filetrail/filetrail/internal/evolution"
	"github.com/filetrail/filetrail/internal/lineage"
	"github.com/filetrail/filetrail/internal/output"
)

func newLineageReport(ctx *CommandContext, filePath string, history lineage.History) *output.LineageReport {
	return &output.LineageReport{
		RepoPath:    ctx.RepoPath,
		FilePath:    filePath,
		GeneratedAt: time.Now(),
		History:     history,
	}
}

func newEvolutionReport(ctx *CommandContext, filePath string, versions []evolution.VersionDelta) *output.EvolutionReport {
	return &output.EvolutionReport{
		RepoPath:    ctx.RepoPath,
		FilePath:    filePath,
		GeneratedAt: time.Now(),
		Versions:    versions,
		Summary:     evolution.Summarize(versions),
	}
}

func writeLineageReport(c *cli.Context, report *output.LineageReport) error {
	opts := OutputOptions(c)
	writer := output.NewLineageReportWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeEvolutionReport(c *cli.Context, report *output.EvolutionReport) error {
	opts := OutputOptions(c)
	writer := output.NewEvolutionReportWriter(opts.Format)
	return writer.Write(report, opts)
}

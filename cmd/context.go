package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/filetrail/filetrail/config"
	"github.com/filetrail/filetrail/internal/gitstore"
	"github.com/filetrail/filetrail/internal/lineage"
	"github.com/filetrail/filetrail/internal/output"
	"github.com/filetrail/filetrail/internal/snapshot"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all file-tracking commands.
type CommandContext struct {
	Config   *config.Config
	RepoPath string
	Backend  gitstore.Backend
	Match    lineage.MatchMode
}

// NewCommandContext creates a context from CLI flags.
// It performs configuration loading, mode parsing, and repository opening.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	// Load configuration with CLI overrides applied
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	engine, err := parseEngineFlag(cfg.Walk.Engine)
	if err != nil {
		return nil, err
	}
	renameDetect, err := parseRenameDetectFlag(cfg.Walk.RenameDetect)
	if err != nil {
		return nil, err
	}
	match, err := parseMatchFlag(cfg.Walk.RenameMatch)
	if err != nil {
		return nil, err
	}

	backend, err := gitstore.Open(c.Context, gitstore.OpenOptions{
		Source:       c.String("repo"),
		CloneDir:     cfg.Walk.CloneDir,
		Engine:       engine,
		RenameDetect: renameDetect,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	return &CommandContext{
		Config:   cfg,
		RepoPath: backend.RepoPath(),
		Backend:  backend,
		Match:    match,
	}, nil
}

// Track walks the complete lineage of the file at path.
func (ctx *CommandContext) Track(c *cli.Context, path string) (lineage.History, error) {
	walker := lineage.NewWalker(ctx.Backend, lineage.Options{Match: ctx.Match})
	return walker.Walk(c.Context, path)
}

// VersionContent fetches one version of the tracked file without staging
// the rest of the lineage. It returns the content together with the name
// the file had at that version; version 0 is empty by construction.
func (ctx *CommandContext) VersionContent(c *cli.Context, history lineage.History, filePath string, version int) ([]byte, string, error) {
	if version == 0 {
		return nil, filePath, nil
	}
	entry := history[len(history)-version]
	content, err := ctx.Backend.ReadBlob(c.Context, entry.Commit.SHA, entry.Path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s at %s: %w", entry.Path, entry.Commit.ShortSHA(), err)
	}
	return content, entry.Path, nil
}

// PrintNoHistoryMessage prints a message when a file has no recoverable history.
func (ctx *CommandContext) PrintNoHistoryMessage(path string) {
	fmt.Printf("No history found for %s\n", path)
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		Top:        c.Int("top"),
		OutputPath: c.String("output"),
		Detail:     c.Bool("detail"),
	}
}

// StagingStore resolves the staging directory from flags and configuration.
func (ctx *CommandContext) StagingStore(c *cli.Context) *snapshot.Store {
	dir := c.String("staging-dir")
	if dir == "" {
		dir = ctx.Config.Staging.Dir
	}
	return snapshot.NewDirStore(dir)
}

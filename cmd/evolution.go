package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/filetrail/filetrail/internal/evolution"
	"github.com/filetrail/filetrail/internal/snapshot"
)

// EvolutionCmd returns the evolution command.
func EvolutionCmd() *cli.Command {
	return &cli.Command{
		Name:      "evolution",
		Aliases:   []string{"e"},
		Usage:     "Analyze line-level changes across a file's versions",
		ArgsUsage: "<file path>",
		Flags:     commonFlags(),
		Action:    evolutionAction,
	}
}

func evolutionAction(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	history, err := ctx.Track(c, path)
	if err != nil {
		return fmt.Errorf("track %s: %w", path, err)
	}
	if len(history) == 0 {
		ctx.PrintNoHistoryMessage(path)
		return nil
	}

	// Versions are staged in memory; nothing touches the working directory.
	set, err := snapshot.Materialize(c.Context, ctx.Backend, history, snapshot.NewMemStore())
	if err != nil {
		return err
	}

	versions, err := evolution.Analyze(set)
	if err != nil {
		return err
	}

	return writeEvolutionReport(c, newEvolutionReport(ctx, path, versions))
}

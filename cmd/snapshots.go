package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/filetrail/filetrail/internal/snapshot"
)

// SnapshotsCmd returns the snapshots command.
func SnapshotsCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:  "staging-dir",
			Usage: "Directory receiving the version artifacts",
		},
		&cli.BoolFlag{
			Name:  "clean",
			Usage: "Remove existing artifacts before materializing",
		},
	)

	return &cli.Command{
		Name:      "snapshots",
		Aliases:   []string{"s"},
		Usage:     "Materialize every version of a file into a staging directory",
		ArgsUsage: "<file path>",
		Flags:     flags,
		Action:    snapshotsAction,
	}
}

func snapshotsAction(c *cli.Context) error {
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

	store := ctx.StagingStore(c)
	if c.Bool("clean") {
		if err := store.Clean(); err != nil {
			return fmt.Errorf("clean %s: %w", store.Location(), err)
		}
	}

	set, err := snapshot.Materialize(c.Context, ctx.Backend, history, store)
	if err != nil {
		if errors.Is(err, snapshot.ErrStagingNotEmpty) {
			return fmt.Errorf("%w (use --clean to reset it)", err)
		}
		return err
	}

	printSnapshotSummary(set, path)
	return nil
}

func printSnapshotSummary(set *snapshot.Set, filePath string) {
	color.Green("Materialized %d versions of %s into %s", set.Count(), filePath, set.Store.Location())
	fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Slot\tSHA\tDate\tPath")
	fmt.Fprintf(tw, "%s\t\t\t(empty)\n", snapshot.SlotName(0))
	for i := 1; i < set.Count(); i++ {
		entry := set.Entry(i)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			snapshot.SlotName(i),
			entry.Commit.ShortSHA(),
			entry.Commit.When.Format("2006-01-02"),
			entry.Path,
		)
	}
	tw.Flush()

	for _, m := range set.Missing {
		color.Red("missing %s: %v", snapshot.SlotName(m.Index), m.Err)
	}
}

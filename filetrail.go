package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/filetrail/filetrail/internal/gitstore"
	"github.com/filetrail/filetrail/internal/lineage"
	"github.com/filetrail/filetrail/internal/snapshot"
)

// RunLegacy implements the classic two-argument invocation: walk the
// file's full history, print the lineage, then stage every version under
// stagingDir.
func RunLegacy(repoPath string, filePath string, stagingDir string) error {
	color.Green("Tracking %v in %v repo", filePath, repoPath)

	ctx := context.Background()
	backend, err := gitstore.Open(ctx, gitstore.OpenOptions{
		Source:       repoPath,
		Engine:       gitstore.EngineAuto,
		RenameDetect: gitstore.RenameDetectAggressive,
	})
	if err != nil {
		return fmt.Errorf("invalid Git repository - please run from or specify the full path to the root of the project: %w", err)
	}

	walker := lineage.NewWalker(backend, lineage.Options{})
	history, err := walker.Walk(ctx, filePath)
	if err != nil {
		return fmt.Errorf("failed to walk history: %w", err)
	}

	ShowLineage(history)

	if len(history) == 0 {
		return nil
	}

	store := snapshot.NewDirStore(stagingDir)
	if err := store.Clean(); err != nil {
		return fmt.Errorf("clean %v: %w", store.Location(), err)
	}
	set, err := snapshot.Materialize(ctx, backend, history, store)
	if err != nil {
		return err
	}

	fmt.Println("")
	color.Green("Staged %v versions under %v", set.Count(), store.Location())
	for _, m := range set.Missing {
		color.Red("missing %v: %v", snapshot.SlotName(m.Index), m.Err)
	}
	return nil
}

// ShowLineage prints a file's history in the classic indented layout.
func ShowLineage(history lineage.History) {
	names := history.Paths()

	fmt.Print("\t")
	color.Yellow("Found %v versions across %v name(s):", len(history), len(names))
	fmt.Println("")

	colorTitle := color.New(color.FgGreen).Add(color.Underline)

	fmt.Print("\t")
	colorTitle.Println("Versions:")

	colorVersion := color.New(color.FgRed)
	colorPath := color.New(color.FgYellow)

	version := len(history)
	for _, entry := range history {
		fmt.Print("\t\t")
		colorVersion.Print(color.RedString("ver%v %v", version, entry.Commit.ShortSHA()))
		colorPath.Println(color.YellowString(" - %v (%v)", entry.Path, entry.Commit.When.Format("2006-01-02")))
		version--
	}
}

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/filetrail/filetrail/internal/snapshot"
	"github.com/filetrail/filetrail/internal/textdiff"
)

// DiffCmd returns the diff command.
func DiffCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.IntFlag{
			Name:    "from",
			Aliases: []string{"a"},
			Usage:   "Older version index (default: one before --to)",
			Value:   -1,
		},
		&cli.IntFlag{
			Name:    "to",
			Aliases: []string{"b"},
			Usage:   "Newer version index (default: latest)",
			Value:   -1,
		},
		&cli.IntFlag{
			Name:  "context",
			Usage: "Context lines around each hunk",
			Value: -1,
		},
	)

	return &cli.Command{
		Name:      "diff",
		Usage:     "Show changes between two versions of a file",
		ArgsUsage: "<file path>",
		Flags:     flags,
		Action:    diffAction,
	}
}

func diffAction(c *cli.Context) error {
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

	latest := len(history)
	to := c.Int("to")
	if to < 0 {
		to = latest
	}
	from := c.Int("from")
	if from < 0 {
		from = to - 1
	}
	if err := validVersion(from, latest); err != nil {
		return err
	}
	if err := validVersion(to, latest); err != nil {
		return err
	}

	fromContent, fromPath, err := ctx.VersionContent(c, history, path, from)
	if err != nil {
		return err
	}
	toContent, toPath, err := ctx.VersionContent(c, history, path, to)
	if err != nil {
		return err
	}

	fromLabel := snapshot.SlotName(from) + "/" + fromPath
	toLabel := snapshot.SlotName(to) + "/" + toPath

	if textdiff.IsBinary(fromContent) || textdiff.IsBinary(toContent) {
		if bytes.Equal(fromContent, toContent) {
			fmt.Printf("Binary versions %s and %s are identical\n", fromLabel, toLabel)
		} else {
			fmt.Printf("Binary versions %s and %s differ\n", fromLabel, toLabel)
		}
		return nil
	}

	contextLines := c.Int("context")
	if contextLines < 0 {
		contextLines = ctx.Config.Diff.ContextLines
	}

	doc, err := textdiff.Unified(string(fromContent), string(toContent), fromLabel, toLabel, contextLines)
	if err != nil {
		return err
	}

	return printUnified(c, doc)
}

// printUnified writes a unified diff document, colorized on the console.
func printUnified(c *cli.Context, doc string) error {
	if out := c.String("output"); out != "" {
		return os.WriteFile(out, []byte(doc), 0644)
	}
	if doc == "" {
		return nil
	}

	for _, line := range strings.Split(strings.TrimSuffix(doc, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			color.New(color.Bold).Println(line)
		case strings.HasPrefix(line, "@@"):
			color.Cyan("%s", line)
		case strings.HasPrefix(line, "+"):
			color.Green("%s", line)
		case strings.HasPrefix(line, "-"):
			color.Red("%s", line)
		default:
			fmt.Println(line)
		}
	}
	return nil
}

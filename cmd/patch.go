package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/filetrail/filetrail/internal/textdiff"
)

// PatchCmd returns the patch command.
func PatchCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.IntFlag{
			Name:  "version",
			Usage: "Base version index (default: latest)",
			Value: -1,
		},
	)

	return &cli.Command{
		Name:      "patch",
		Usage:     "Apply a unified diff to a version of a file",
		ArgsUsage: "<file path> <patch file>",
		Flags:     flags,
		Action:    patchAction,
	}
}

func patchAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("file path and patch file arguments required")
	}
	path := c.Args().Get(0)
	patchPath := c.Args().Get(1)

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
	version := c.Int("version")
	if version < 0 {
		version = latest
	}
	if err := validVersion(version, latest); err != nil {
		return err
	}

	base, _, err := ctx.VersionContent(c, history, path, version)
	if err != nil {
		return err
	}
	if textdiff.IsBinary(base) {
		return fmt.Errorf("cannot patch binary content")
	}

	doc, err := readPatchDoc(patchPath)
	if err != nil {
		return err
	}

	patched, err := textdiff.ApplyUnified(string(base), doc)
	if err != nil {
		if errors.Is(err, textdiff.ErrPatchConflict) {
			return fmt.Errorf("ver%d of %s: %w", version, path, err)
		}
		return err
	}

	if out := c.String("output"); out != "" {
		return os.WriteFile(out, []byte(patched), 0644)
	}
	fmt.Print(patched)
	return nil
}

// readPatchDoc reads a patch document from a file, or stdin for "-".
func readPatchDoc(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read patch: %w", err)
	}
	return string(data), nil
}

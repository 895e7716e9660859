package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/filetrail/filetrail/internal/textdiff"
)

// ShowCmd returns the show command.
func ShowCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.IntFlag{
			Name:  "version",
			Usage: "Version index to print (default: latest)",
			Value: -1,
		},
		&cli.BoolFlag{
			Name:  "plain",
			Usage: "Disable syntax highlighting",
		},
	)

	return &cli.Command{
		Name:      "show",
		Usage:     "Print one version of a file",
		ArgsUsage: "<file path>",
		Flags:     flags,
		Action:    showAction,
	}
}

func showAction(c *cli.Context) error {
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
	version := c.Int("version")
	if version < 0 {
		version = latest
	}
	if err := validVersion(version, latest); err != nil {
		return err
	}

	content, histPath, err := ctx.VersionContent(c, history, path, version)
	if err != nil {
		return err
	}

	if out := c.String("output"); out != "" {
		return os.WriteFile(out, content, 0644)
	}
	if c.Bool("plain") || color.NoColor || textdiff.IsBinary(content) {
		_, err := os.Stdout.Write(content)
		return err
	}
	// Highlight by the name the file had at that version, which may carry
	// a different extension than it does today.
	return highlight(histPath, content)
}

func highlight(path string, content []byte) error {
	lexer := lexers.Match(path)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, string(content))
	if err != nil {
		return err
	}
	return formatter.Format(os.Stdout, style, iterator)
}

package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/filetrail/filetrail/cmd"
)

func main() {
	// Build the app with subcommands
	app := cmd.App()

	// Add legacy flags to the root command for backward compatibility
	app.Flags = append(app.Flags,
		&cli.StringFlag{
			Name:  "staging-dir",
			Value: "filetrail-snapshots",
			Usage: "directory receiving version snapshots (legacy mode)",
		},
	)

	// Override the default action for legacy support
	app.Action = func(c *cli.Context) error {
		// If a subcommand was invoked, this won't be called
		// If no args, show help
		if c.NArg() == 0 {
			return cli.ShowAppHelp(c)
		}

		// Legacy mode: filetrail <repository> <file> tracks the file and
		// stages every version in one step
		if c.NArg() >= 2 {
			return RunLegacy(c.Args().Get(0), c.Args().Get(1), c.String("staging-dir"))
		}

		// A single argument is a file path in the current repository
		return cmd.TrackCmd().Action(c)
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

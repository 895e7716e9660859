package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/filetrail/filetrail/config"
	"github.com/filetrail/filetrail/internal/gitstore"
	"github.com/filetrail/filetrail/internal/lineage"
	"github.com/filetrail/filetrail/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "filetrail",
		Usage:   "Rename-aware file history and version snapshot tool for Git repositories",
		Version: "1.0.0",
		Commands: []*cli.Command{
			TrackCmd(),
			SnapshotsCmd(),
			EvolutionCmd(),
			DiffCmd(),
			PatchCmd(),
			ShowCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: setupApp,
		Action: legacyAction,
	}
}

func setupApp(c *cli.Context) error {
	if c.Bool("verbose") {
		log.SetLevel(log.DebugLevel)
	}
	if c.Bool("no-color") {
		color.NoColor = true
	}
	return nil
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path or URL of the Git repository",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:  "engine",
			Usage: "History engine (auto, native, cli)",
		},
		&cli.StringFlag{
			Name:  "rename-detect",
			Usage: "Rename detection mode (off, simple, aggressive)",
		},
		&cli.StringFlag{
			Name:  "match",
			Usage: "Rename destination matching (exact, suffix)",
		},
		&cli.StringFlag{
			Name:  "clone-dir",
			Usage: "Destination directory for remote clones",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns to include in batch tracking (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to exclude from batch tracking (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
			Value:   "console",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of versions to show (0 = all)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.BoolFlag{
			Name:  "detail",
			Usage: "Show full SHAs and author emails",
		},
	}
}

// parseEngineFlag parses the history engine flag.
func parseEngineFlag(s string) (gitstore.EngineMode, error) {
	switch s {
	case "", "auto":
		return gitstore.EngineAuto, nil
	case "native", "gogit":
		return gitstore.EngineNative, nil
	case "cli", "git":
		return gitstore.EngineGitCLI, nil
	default:
		return gitstore.EngineAuto, fmt.Errorf("invalid engine: %s (expected auto, native or cli)", s)
	}
}

// parseRenameDetectFlag parses the rename detection mode flag.
func parseRenameDetectFlag(s string) (gitstore.RenameDetectMode, error) {
	switch s {
	case "", "aggressive", "similarity":
		return gitstore.RenameDetectAggressive, nil
	case "simple", "exact":
		return gitstore.RenameDetectSimple, nil
	case "off", "false", "none":
		return gitstore.RenameDetectOff, nil
	default:
		return gitstore.RenameDetectOff, fmt.Errorf("invalid rename detection mode: %s (expected off, simple or aggressive)", s)
	}
}

// parseMatchFlag parses the rename destination match flag.
func parseMatchFlag(s string) (lineage.MatchMode, error) {
	switch s {
	case "", "exact":
		return lineage.MatchExact, nil
	case "suffix":
		return lineage.MatchSuffix, nil
	default:
		return lineage.MatchExact, fmt.Errorf("invalid match mode: %s (expected exact or suffix)", s)
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// loadConfig loads configuration from file or defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply overrides from CLI
	if engine := c.String("engine"); engine != "" {
		cfg.Walk.Engine = engine
	}
	if mode := c.String("rename-detect"); mode != "" {
		cfg.Walk.RenameDetect = mode
	}
	if match := c.String("match"); match != "" {
		cfg.Walk.RenameMatch = match
	}
	if dir := c.String("clone-dir"); dir != "" {
		cfg.Walk.CloneDir = dir
	}
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}

	return cfg, nil
}

// fileArg returns the required file path argument.
func fileArg(c *cli.Context) (string, error) {
	if c.NArg() < 1 {
		return "", fmt.Errorf("file path argument required")
	}
	return c.Args().Get(0), nil
}

// validVersion checks a version index against the highest version slot.
func validVersion(version, latest int) error {
	if version < 0 || version > latest {
		return fmt.Errorf("version %d out of range (0..%d)", version, latest)
	}
	return nil
}

// legacyAction handles the default command behavior.
// When a file path is provided as an argument, it runs the track command.
func legacyAction(c *cli.Context) error {
	// If no args and no subcommand, show help
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}

	// Treat the first arg as a file path and run track
	return TrackCmd().Action(c)
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/filetrail/filetrail/config"
	"github.com/filetrail/filetrail/internal/gitstore"
	"github.com/filetrail/filetrail/internal/watch"
)

// TrackCmd returns the track command.
func TrackCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.BoolFlag{
			Name:    "glob",
			Aliases: []string{"g"},
			Usage:   "Treat the argument as a glob pattern and track every matching file",
		},
		&cli.BoolFlag{
			Name:    "watch",
			Aliases: []string{"w"},
			Usage:   "Re-run whenever the repository changes",
		},
	)

	return &cli.Command{
		Name:      "track",
		Aliases:   []string{"t"},
		Usage:     "Trace a file's history across renames",
		ArgsUsage: "<file path>",
		Flags:     flags,
		Action:    trackAction,
	}
}

func trackAction(c *cli.Context) error {
	pattern, err := fileArg(c)
	if err != nil {
		return err
	}

	if c.Bool("watch") {
		return trackWatch(c, pattern)
	}
	return runTrack(c, pattern)
}

func runTrack(c *cli.Context, pattern string) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	paths := []string{pattern}
	if c.Bool("glob") {
		paths, err = expandGlob(c, ctx, pattern)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Printf("No files match %s\n", pattern)
			return nil
		}
	}

	for i, path := range paths {
		if i > 0 {
			fmt.Println()
		}
		history, walkErr := ctx.Track(c, path)
		if walkErr != nil && len(history) == 0 {
			return fmt.Errorf("track %s: %w", path, walkErr)
		}
		if err := writeLineageReport(c, newLineageReport(ctx, path, history)); err != nil {
			return err
		}
		if walkErr != nil {
			return fmt.Errorf("history of %s may be incomplete: %w", path, walkErr)
		}
	}
	return nil
}

// expandGlob matches pattern against the HEAD tree, then applies the
// configured include and exclude filters.
func expandGlob(c *cli.Context, ctx *CommandContext, pattern string) ([]string, error) {
	files, err := ctx.Backend.HeadFiles(c.Context)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	var matched []string
	for _, f := range files {
		ok, err := doublestar.Match(pattern, f)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %s: %w", pattern, err)
		}
		if !ok || !passesFilters(ctx.Config.Filters, f) {
			continue
		}
		matched = append(matched, f)
	}
	return matched, nil
}

func passesFilters(filters config.FilterConfig, path string) bool {
	for _, pat := range filters.Exclude {
		if ok, _ := doublestar.Match(pat, path); ok {
			return false
		}
	}
	if len(filters.Include) == 0 {
		return true
	}
	for _, pat := range filters.Include {
		if ok, _ := doublestar.Match(pat, path); ok {
			return true
		}
	}
	return false
}

// trackWatch reruns the track on every debounced repository change. Each
// run reopens the repository so new commits are picked up.
func trackWatch(c *cli.Context, pattern string) error {
	source := c.String("repo")
	if gitstore.IsRemoteURL(source) {
		return fmt.Errorf("--watch requires a local repository")
	}

	var mu sync.Mutex
	run := func() {
		mu.Lock()
		defer mu.Unlock()
		if err := runTrack(c, pattern); err != nil {
			log.WithField("error", err).Error("track failed")
		}
	}
	run()

	w, err := watch.New(source, watch.DefaultDebounceDelay, run)
	if err != nil {
		return err
	}

	notifyCtx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(os.Stderr, "Watching for repository changes. Press Ctrl-C to stop.")
	if err := w.Run(notifyCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

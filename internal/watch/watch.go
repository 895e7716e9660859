// Package watch re-runs a callback when a Git repository's metadata changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// DefaultDebounceDelay is the quiet period collapsing bursts of repository
// events into one reload.
const DefaultDebounceDelay = 350 * time.Millisecond

// Watcher observes a repository's .git directory and invokes a callback
// after each debounced burst of changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce *Debouncer
}

// New creates a watcher over the repository at repoPath. The onChange
// callback fires once per quiet period after events settle.
func New(repoPath string, delay time.Duration, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}

	added := 0
	for _, path := range watchPaths(repoPath) {
		if err := fsw.Add(path); err != nil {
			log.WithFields(log.Fields{"path": path, "error": err}).Debug("skipping watch path")
			continue
		}
		log.WithField("path", path).Debug("watching path")
		added++
	}
	if added == 0 {
		err := fsw.Close()
		return nil, errors.Join(fmt.Errorf("no watchable paths under %s", repoPath), err)
	}

	return &Watcher{
		fsw:      fsw,
		debounce: NewDebouncer(delay, onChange),
	}, nil
}

// Run processes events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if shouldIgnorePath(ev.Name) {
				continue
			}
			log.WithFields(log.Fields{"op": ev.Op.String(), "path": ev.Name}).Debug("repository event")
			w.debounce.Trigger()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.WithField("error", err).Warn("watch error")
		}
	}
}

// Close stops the watcher and cancels any pending callback.
func (w *Watcher) Close() error {
	w.debounce.Stop()
	return w.fsw.Close()
}

// watchPaths selects the directories whose contents signal new commits.
// Ref updates land in subdirectories, which fsnotify does not recurse into,
// so the relevant ones are watched individually.
func watchPaths(root string) []string {
	gitDir := filepath.Join(root, ".git")
	if info, err := os.Stat(gitDir); err != nil || !info.IsDir() {
		// Bare repository or a worktree gitdir file.
		gitDir = root
	}
	paths := []string{gitDir}
	for _, sub := range []string{"refs", filepath.Join("refs", "heads"), "logs"} {
		paths = append(paths, filepath.Join(gitDir, sub))
	}
	return paths
}

func shouldIgnorePath(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".lock" || ext == ".tmp" {
		return true
	}
	return strings.HasPrefix(filepath.Base(name), "tmp_")
}

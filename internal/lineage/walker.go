package lineage

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/filetrail/filetrail/internal/gitstore"
)

// MatchMode controls how a tree-diff destination path is matched against
// the tracked path during rename resolution.
type MatchMode int

const (
	// MatchExact requires path equality.
	MatchExact MatchMode = iota
	// MatchSuffix also accepts a destination whose trailing path components
	// equal the tracked path, tolerating directory-qualified inputs.
	MatchSuffix
)

// String returns a string representation of the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchSuffix:
		return "suffix"
	default:
		return "exact"
	}
}

// Options configures a Walker.
type Options struct {
	Match MatchMode
}

// Walker produces the lineage of one file by repeatedly querying a
// path-restricted log and resolving renames at each history boundary.
type Walker struct {
	backend gitstore.Backend
	opts    Options
}

// NewWalker creates a walker over the given backend.
func NewWalker(backend gitstore.Backend, opts Options) *Walker {
	return &Walker{backend: backend, opts: opts}
}

// Walk returns every commit that modified the file now at initialPath,
// under any of its historical names, most recent first. A backend failure
// returns the lineage collected so far together with the error. A path
// with no history yields an empty history and no error.
func (w *Walker) Walk(ctx context.Context, initialPath string) (History, error) {
	var history History
	visited := make(map[string]struct{})
	currentPath := initialPath

	for {
		commits, err := w.backend.PathLog(ctx, currentPath)
		if err != nil {
			return history, fmt.Errorf("log %s: %w", currentPath, err)
		}

		// Scan the log newest-first, recording unvisited commits. A visited
		// commit clears the boundary: after a rename hop the old name's log
		// leads with commits already recorded under the new name, and only
		// an unvisited oldest entry extends the lineage further back.
		var boundary *gitstore.CommitInfo
		for i := range commits {
			if _, ok := visited[commits[i].SHA]; ok {
				boundary = nil
				continue
			}
			visited[commits[i].SHA] = struct{}{}
			history = append(history, Entry{Commit: commits[i], Path: currentPath})
			boundary = &commits[i]
		}
		if boundary == nil {
			return history, nil
		}

		predecessor, found, err := w.resolvePredecessor(ctx, *boundary, currentPath)
		if err != nil {
			return history, err
		}
		if !found {
			return history, nil
		}
		log.WithFields(log.Fields{
			"from":   currentPath,
			"to":     predecessor,
			"commit": boundary.ShortSHA(),
		}).Debug("following rename")
		currentPath = predecessor
	}
}

// resolvePredecessor looks for the name the file had before it became
// trackedPath. It diffs each ancestor of the boundary commit against the
// boundary tree; a rename or copy entry whose destination matches the
// tracked path names the predecessor.
func (w *Walker) resolvePredecessor(ctx context.Context, boundary gitstore.CommitInfo, trackedPath string) (string, bool, error) {
	ancestors, err := w.backend.Ancestors(ctx, boundary.SHA)
	if err != nil {
		return "", false, fmt.Errorf("ancestors of %s: %w", boundary.ShortSHA(), err)
	}

	for _, ancestor := range ancestors {
		if ancestor.SHA == boundary.SHA {
			// Diffing the boundary against itself finds nothing.
			continue
		}
		entries, err := w.backend.TreeDiff(ctx, ancestor.SHA, boundary.SHA)
		if err != nil {
			return "", false, fmt.Errorf("diff %s..%s: %w", ancestor.ShortSHA(), boundary.ShortSHA(), err)
		}
		for _, entry := range entries {
			if entry.Kind.IsRenameLike() && w.matches(entry.Path, trackedPath) {
				return entry.OldPath, true, nil
			}
		}
	}
	return "", false, nil
}

// matches tests a diff destination against the tracked path. Suffix mode
// matches whole trailing components, never raw substrings.
func (w *Walker) matches(candidate, tracked string) bool {
	if candidate == tracked {
		return true
	}
	if w.opts.Match == MatchSuffix {
		return strings.HasSuffix(candidate, "/"+tracked)
	}
	return false
}

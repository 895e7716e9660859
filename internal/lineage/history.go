// Package lineage recovers the complete history of a single file across
// renames and copies, pairing each commit with the name the file had at
// that point in time.
package lineage

import (
	"github.com/filetrail/filetrail/internal/gitstore"
)

// Entry pairs a commit with the path the tracked file had at that commit.
type Entry struct {
	Commit gitstore.CommitInfo
	Path   string
}

// History is a file's lineage, most recent first. No commit appears twice
// and entries are ordered by commit recency, descending.
type History []Entry

// Paths returns the distinct path names in the lineage, newest name first.
func (h History) Paths() []string {
	seen := make(map[string]struct{})
	var paths []string
	for _, e := range h {
		if _, ok := seen[e.Path]; ok {
			continue
		}
		seen[e.Path] = struct{}{}
		paths = append(paths, e.Path)
	}
	return paths
}

// Renames returns how many times the file changed names across its history.
func (h History) Renames() int {
	n := len(h.Paths())
	if n == 0 {
		return 0
	}
	return n - 1
}

// Newest returns the most recent entry, or nil for an empty history.
func (h History) Newest() *Entry {
	if len(h) == 0 {
		return nil
	}
	return &h[0]
}

// Oldest returns the earliest entry, or nil for an empty history.
func (h History) Oldest() *Entry {
	if len(h) == 0 {
		return nil
	}
	return &h[len(h)-1]
}

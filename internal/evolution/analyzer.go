// Package evolution computes per-version line statistics across a file's
// materialized history.
package evolution

import (
	"fmt"

	"github.com/filetrail/filetrail/internal/lineage"
	"github.com/filetrail/filetrail/internal/snapshot"
	"github.com/filetrail/filetrail/internal/textdiff"
)

// VersionDelta summarizes how one version differs from its predecessor.
type VersionDelta struct {
	Index        int // version slot, 1-based; version 1 is the creation
	Entry        lineage.Entry
	PathChanged  bool // the file carried a different name in the prior version
	Binary       bool
	Missing      bool // the version could not be materialized
	Lines        int  // total lines in this version
	LinesAdded   int
	LinesDeleted int
	Hunks        int // contiguous change regions against the prior version
}

// Churn returns total lines touched by this version.
func (d VersionDelta) Churn() int {
	return d.LinesAdded + d.LinesDeleted
}

// Analyze diffs each adjacent version pair in the set, oldest to newest.
// The empty synthetic slot 0 anchors version 1 as a pure addition. A
// missing version contributes a Missing marker and the next version is
// diffed against the last materialized content. Binary versions are
// staged but carry no line statistics.
func Analyze(set *snapshot.Set) ([]VersionDelta, error) {
	missing := make(map[int]bool, len(set.Missing))
	for _, m := range set.Missing {
		missing[m.Index] = true
	}

	deltas := make([]VersionDelta, 0, set.Count()-1)
	var prev []string
	prevPath := ""
	prevBinary := false

	for i := 1; i < set.Count(); i++ {
		entry := set.Entry(i)
		vd := VersionDelta{Index: i, Entry: *entry}

		if missing[i] {
			vd.Missing = true
			deltas = append(deltas, vd)
			continue
		}

		content, err := set.Version(i)
		if err != nil {
			return nil, fmt.Errorf("read version %d: %w", i, err)
		}
		vd.PathChanged = prevPath != "" && entry.Path != prevPath

		if textdiff.IsBinary(content) {
			vd.Binary = true
			deltas = append(deltas, vd)
			prev = nil
			prevPath = entry.Path
			prevBinary = true
			continue
		}

		cur := textdiff.Lines(string(content))
		vd.Lines = len(cur)
		if !prevBinary {
			for _, d := range textdiff.Compare(prev, cur) {
				vd.Hunks++
				vd.LinesAdded += len(d.NewLines)
				vd.LinesDeleted += len(d.OldLines)
			}
		}
		deltas = append(deltas, vd)
		prev = cur
		prevPath = entry.Path
		prevBinary = false
	}
	return deltas, nil
}

// Package textdiff wraps the line-diff and patch machinery used to
// compare version snapshots.
package textdiff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DeltaKind classifies a contiguous change between two line sequences.
type DeltaKind int

const (
	DeltaInsert DeltaKind = iota
	DeltaDelete
	DeltaChange
)

// String returns a string representation of the delta kind.
func (k DeltaKind) String() string {
	switch k {
	case DeltaInsert:
		return "insert"
	case DeltaDelete:
		return "delete"
	case DeltaChange:
		return "change"
	default:
		return "unknown"
	}
}

// Delta is one contiguous difference: OldLines at OldPos in the source
// are replaced by NewLines at NewPos in the target. Positions are
// zero-based line offsets.
type Delta struct {
	Kind     DeltaKind
	OldPos   int
	OldLines []string
	NewPos   int
	NewLines []string
}

// Lines splits content into logical lines without terminators.
func Lines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines is the inverse of Lines for newline-terminated content.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// IsBinary mirrors git's heuristic: content with a NUL byte is binary.
func IsBinary(content []byte) bool {
	return bytes.IndexByte(content, 0) != -1
}

// Compare returns the deltas that turn a into b.
func Compare(a, b []string) []Delta {
	matcher := difflib.NewMatcher(a, b)

	var deltas []Delta
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'r':
			deltas = append(deltas, Delta{
				Kind:     DeltaChange,
				OldPos:   op.I1,
				OldLines: copyLines(a[op.I1:op.I2]),
				NewPos:   op.J1,
				NewLines: copyLines(b[op.J1:op.J2]),
			})
		case 'd':
			deltas = append(deltas, Delta{
				Kind:     DeltaDelete,
				OldPos:   op.I1,
				OldLines: copyLines(a[op.I1:op.I2]),
				NewPos:   op.J1,
			})
		case 'i':
			deltas = append(deltas, Delta{
				Kind:     DeltaInsert,
				OldPos:   op.I1,
				NewPos:   op.J1,
				NewLines: copyLines(b[op.J1:op.J2]),
			})
		}
	}
	return deltas
}

// ApplyDeltas replays deltas onto base, producing the target line
// sequence. The recorded old lines must match the base at each delta
// position; a mismatch fails with ErrPatchConflict.
func ApplyDeltas(base []string, deltas []Delta) ([]string, error) {
	out := make([]string, 0, len(base))
	pos := 0
	for _, d := range deltas {
		if d.OldPos < pos || d.OldPos > len(base) {
			return nil, fmt.Errorf("%w: delta at line %d out of order", ErrPatchConflict, d.OldPos)
		}
		out = append(out, base[pos:d.OldPos]...)
		pos = d.OldPos
		for _, want := range d.OldLines {
			if pos >= len(base) || base[pos] != want {
				return nil, fmt.Errorf("%w: base line %d does not match delta", ErrPatchConflict, pos+1)
			}
			pos++
		}
		out = append(out, d.NewLines...)
	}
	out = append(out, base[pos:]...)
	return out, nil
}

// Unified renders the difference between two contents as a unified diff
// document with the given number of context lines. Content without a
// trailing newline is treated as if it had one.
func Unified(aContent, bContent, fromFile, toFile string, context int) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        splitForUnified(aContent),
		B:        splitForUnified(bContent),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  context,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// splitForUnified produces newline-terminated lines for difflib, dropping
// the phantom empty line SplitLines appends after a trailing newline.
func splitForUnified(content string) []string {
	if content == "" {
		return nil
	}
	lines := difflib.SplitLines(content)
	if n := len(lines); strings.HasSuffix(content, "\n") && n > 0 && lines[n-1] == "\n" {
		lines = lines[:n-1]
	}
	return lines
}

func copyLines(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

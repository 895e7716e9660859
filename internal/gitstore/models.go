package gitstore

import (
	"time"
)

// CommitInfo represents minimal information about a Git commit.
type CommitInfo struct {
	SHA     string
	Parents []string
	When    time.Time
	Author  AuthorInfo
	Message string
}

// ShortSHA returns the abbreviated commit identifier used in reports.
func (c CommitInfo) ShortSHA() string {
	if len(c.SHA) > 8 {
		return c.SHA[:8]
	}
	return c.SHA
}

// IsMerge reports whether the commit has more than one parent.
func (c CommitInfo) IsMerge() bool {
	return len(c.Parents) > 1
}

// AuthorInfo represents commit author information.
type AuthorInfo struct {
	Name  string
	Email string
}

// DiffEntry represents a single path-level change between two trees.
type DiffEntry struct {
	Kind    ChangeKind
	Path    string // path after the change (the removed path for deletes)
	OldPath string // source path for renames and copies
	Score   int    // similarity 0-100 where the engine reports one
}

// ChangeKind represents the type of change.
type ChangeKind int

const (
	ChangeKindAdded ChangeKind = iota
	ChangeKindModified
	ChangeKindDeleted
	ChangeKindRenamed
	ChangeKindCopied
)

// String returns a string representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeKindAdded:
		return "added"
	case ChangeKindModified:
		return "modified"
	case ChangeKindDeleted:
		return "deleted"
	case ChangeKindRenamed:
		return "renamed"
	case ChangeKindCopied:
		return "copied"
	default:
		return "unknown"
	}
}

// IsRenameLike reports whether the kind carries a source path.
func (k ChangeKind) IsRenameLike() bool {
	return k == ChangeKindRenamed || k == ChangeKindCopied
}

// RenameDetectMode controls how tree diffs detect renames.
type RenameDetectMode int

const (
	RenameDetectOff RenameDetectMode = iota
	RenameDetectSimple
	RenameDetectAggressive
)

// String returns a string representation of the rename detection mode.
func (m RenameDetectMode) String() string {
	switch m {
	case RenameDetectOff:
		return "off"
	case RenameDetectSimple:
		return "simple"
	case RenameDetectAggressive:
		return "aggressive"
	default:
		return "unknown"
	}
}

// EngineMode selects which backend implementation reads the repository.
type EngineMode int

const (
	EngineAuto EngineMode = iota
	EngineNative
	EngineGitCLI
)

// String returns a string representation of the engine mode.
func (m EngineMode) String() string {
	switch m {
	case EngineNative:
		return "native"
	case EngineGitCLI:
		return "cli"
	default:
		return "auto"
	}
}

// OpenOptions configures repository access.
type OpenOptions struct {
	Source       string // local path or remote URL
	CloneDir     string // destination directory for remote clones
	Engine       EngineMode
	RenameDetect RenameDetectMode
}

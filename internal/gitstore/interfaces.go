package gitstore

import (
	"context"
	"errors"
)

// Error kinds surfaced by repository backends.
var (
	// ErrRepositoryNotFound means the source is not a usable git repository.
	ErrRepositoryNotFound = errors.New("repository not found")
	// ErrNotFoundInTree means a path has no entry in a commit's tree.
	ErrNotFoundInTree = errors.New("path not found in commit tree")
)

// Backend provides read access to a repository's commit graph and object
// store. All methods are read-only; implementations must be safe for
// concurrent readers.
type Backend interface {
	// PathLog returns the non-merge commits that touch path, most recent first.
	// A path with no history yields an empty log, not an error.
	PathLog(ctx context.Context, path string) ([]CommitInfo, error)

	// Ancestors returns the non-merge commits reachable from sha, including
	// the commit itself, most recent first.
	Ancestors(ctx context.Context, sha string) ([]CommitInfo, error)

	// TreeDiff compares the trees of two commits, older first, with rename
	// detection applied per the backend's configured mode.
	TreeDiff(ctx context.Context, oldSHA, newSHA string) ([]DiffEntry, error)

	// ReadBlob returns the content of path in the given commit's tree. The
	// error wraps ErrNotFoundInTree when the path has no entry there.
	ReadBlob(ctx context.Context, sha, path string) ([]byte, error)

	// HeadFiles lists every file path in the HEAD tree.
	HeadFiles(ctx context.Context) ([]string, error)

	// RepoPath returns the on-disk location of the repository.
	RepoPath() string
}

// Compile-time interface conformance checks.
var (
	_ Backend = (*NativeBackend)(nil)
	_ Backend = (*CLIBackend)(nil)
	_ Backend = (*MockBackend)(nil)
)

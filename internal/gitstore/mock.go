package gitstore

import (
	"context"
	"fmt"
)

// MockBackend is a test double for Backend. Tests script repository shape
// through plain maps instead of building a real repository.
type MockBackend struct {
	// Logs maps a tracked path to its path-restricted log, newest first.
	Logs map[string][]CommitInfo
	// AncestorLists maps a commit SHA to its ancestor log, newest first.
	AncestorLists map[string][]CommitInfo
	// Diffs maps "oldSHA..newSHA" to the tree diff between those commits.
	Diffs map[string][]DiffEntry
	// Blobs maps "sha:path" to file content.
	Blobs map[string][]byte
	// Files is the HEAD tree file listing.
	Files []string
	// Err, when set, is returned by every query.
	Err error
}

// PathLog returns the scripted log for path.
func (m *MockBackend) PathLog(_ context.Context, path string) ([]CommitInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Logs[path], nil
}

// Ancestors returns the scripted ancestor log for sha.
func (m *MockBackend) Ancestors(_ context.Context, sha string) ([]CommitInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.AncestorLists[sha], nil
}

// TreeDiff returns the scripted diff for the commit pair.
func (m *MockBackend) TreeDiff(_ context.Context, oldSHA, newSHA string) ([]DiffEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Diffs[oldSHA+".."+newSHA], nil
}

// ReadBlob returns the scripted content for "sha:path".
func (m *MockBackend) ReadBlob(_ context.Context, sha, path string) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	content, ok := m.Blobs[sha+":"+path]
	if !ok {
		return nil, fmt.Errorf("%w: %s at %s", ErrNotFoundInTree, path, sha)
	}
	return content, nil
}

// HeadFiles returns the scripted HEAD file listing.
func (m *MockBackend) HeadFiles(_ context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Files, nil
}

// RepoPath identifies the mock in logs and reports.
func (m *MockBackend) RepoPath() string {
	return "mock"
}

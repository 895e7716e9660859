package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// createTestRepo creates a temporary git repository with a worktree
func createTestRepo(t *testing.T) (string, *git.Repository) {
	tmpDir := t.TempDir()

	repo, err := git.PlainInit(tmpDir, false)
	if err != nil {
		t.Fatalf("Failed to initialize git repo: %v", err)
	}

	return tmpDir, repo
}

// commitFile writes content to a file and commits it
func commitFile(t *testing.T, repo *git.Repository, filename, content, message string, commitTime time.Time) {
	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}

	filePath := filepath.Join(w.Filesystem.Root(), filename)
	if dir := filepath.Dir(filePath); dir != "" {
		os.MkdirAll(dir, 0755)
	}
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := w.Add(filename); err != nil {
		t.Fatalf("Failed to add file: %v", err)
	}

	if _, err := w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@example.com",
			When:  commitTime,
		},
	}); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}
}

// renameFile moves a file to a new name and commits the rename
func renameFile(t *testing.T, repo *git.Repository, oldName, newName, message string, commitTime time.Time) {
	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}

	if _, err := w.Move(oldName, newName); err != nil {
		t.Fatalf("Failed to move file: %v", err)
	}

	if _, err := w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@example.com",
			When:  commitTime,
		},
	}); err != nil {
		t.Fatalf("Failed to commit rename: %v", err)
	}
}

// discardOutput redirects stdout while fn runs
func discardOutput(t *testing.T, fn func()) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	oldStdout := os.Stdout
	os.Stdout = w

	go io.ReadAll(r) // Discard the output

	fn()

	w.Close()
	os.Stdout = oldStdout
}

// testTime returns a deterministic commit timestamp n minutes after a base
func testTime(n int) time.Time {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(n) * time.Minute)
}

// Package snapshot materializes a file's lineage into numbered version
// artifacts: one per commit plus a synthetic empty version 0.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// Error kinds raised by staging operations.
var (
	// ErrStagingConflict means a version slot already holds content.
	ErrStagingConflict = errors.New("staging slot already occupied")
	// ErrStagingNotEmpty means materialization started on an unclean store.
	ErrStagingNotEmpty = errors.New("staging area not empty")
)

// Store is a staging area for version artifacts. Slots are named
// ver0..verN and each may be written exactly once.
type Store struct {
	fs       billy.Filesystem
	location string
}

// NewDirStore stages versions under dir on the local filesystem.
func NewDirStore(dir string) *Store {
	return &Store{fs: osfs.New(dir), location: dir}
}

// NewMemStore stages versions in memory, for transient analysis and tests.
func NewMemStore() *Store {
	return &Store{fs: memfs.New(), location: "in-memory"}
}

// NewStore stages versions at the root of fs; location labels the store
// in messages and reports.
func NewStore(fs billy.Filesystem, location string) *Store {
	return &Store{fs: fs, location: location}
}

// SlotName returns the artifact name for a version index.
func SlotName(index int) string {
	return fmt.Sprintf("ver%d", index)
}

// Location returns where this store keeps its artifacts.
func (s *Store) Location() string {
	return s.location
}

// Path returns a slot's displayable location.
func (s *Store) Path(index int) string {
	return filepath.Join(s.location, SlotName(index))
}

// Write stores content into a slot. Writing a slot that already holds
// content fails with ErrStagingConflict.
func (s *Store) Write(index int, content []byte) error {
	if err := s.fs.MkdirAll(".", 0o755); err != nil {
		return err
	}
	f, err := s.fs.OpenFile(SlotName(index), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrStagingConflict, s.Path(index))
		}
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read returns a slot's content.
func (s *Store) Read(index int) ([]byte, error) {
	return util.ReadFile(s.fs, SlotName(index))
}

// Empty reports whether the staging area holds no artifacts.
func (s *Store) Empty() (bool, error) {
	entries, err := s.fs.ReadDir(".")
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}
	return len(entries) == 0, nil
}

// Clean removes every artifact from the staging area.
func (s *Store) Clean() error {
	entries, err := s.fs.ReadDir(".")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if err := util.RemoveAll(s.fs, entry.Name()); err != nil {
			return err
		}
	}
	return nil
}

package snapshot

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/filetrail/filetrail/internal/gitstore"
	"github.com/filetrail/filetrail/internal/lineage"
)

// SlotError records a version slot that could not be materialized.
type SlotError struct {
	Index int
	Path  string
	SHA   string
	Err   error
}

func (e SlotError) Error() string {
	return fmt.Sprintf("version %d (%s at %s): %v", e.Index, e.Path, e.SHA, e.Err)
}

func (e SlotError) Unwrap() error {
	return e.Err
}

// Set is the result of materializing a lineage: version artifacts
// ver0..verN, oldest to newest, where ver0 is the empty synthetic
// predecessor and verN holds the newest commit's content.
type Set struct {
	Store   *Store
	History lineage.History
	Missing []SlotError
}

// Count returns the number of version slots, including synthetic slot 0.
func (s *Set) Count() int {
	return len(s.History) + 1
}

// Version returns the content of one version slot.
func (s *Set) Version(index int) ([]byte, error) {
	return s.Store.Read(index)
}

// Entry returns the lineage entry behind a version slot, or nil for
// slot 0 and out-of-range indices. Slot indices run oldest to newest,
// the reverse of lineage order.
func (s *Set) Entry(index int) *lineage.Entry {
	if index <= 0 || index > len(s.History) {
		return nil
	}
	return &s.History[len(s.History)-index]
}

// Complete reports whether every slot materialized.
func (s *Set) Complete() bool {
	return len(s.Missing) == 0
}

// Materialize writes one artifact per lineage entry into store, plus the
// synthetic empty version 0. The store must be empty before the first
// write. Entries are processed in recency order and the newest receives
// the highest index. A path missing from its commit's tree is recorded in
// Set.Missing and does not stop the remaining slots.
func Materialize(ctx context.Context, backend gitstore.Backend, history lineage.History, store *Store) (*Set, error) {
	empty, err := store.Empty()
	if err != nil {
		return nil, err
	}
	if !empty {
		return nil, fmt.Errorf("%w: %s", ErrStagingNotEmpty, store.Location())
	}

	if err := store.Write(0, nil); err != nil {
		return nil, err
	}

	set := &Set{Store: store, History: history}
	index := len(history)
	for _, entry := range history {
		content, err := backend.ReadBlob(ctx, entry.Commit.SHA, entry.Path)
		if err != nil {
			log.WithFields(log.Fields{
				"slot": index,
				"path": entry.Path,
			}).Warn("skipping version: ", err)
			set.Missing = append(set.Missing, SlotError{
				Index: index,
				Path:  entry.Path,
				SHA:   entry.Commit.SHA,
				Err:   err,
			})
			index--
			continue
		}
		if err := store.Write(index, content); err != nil {
			return set, err
		}
		index--
	}
	return set, nil
}

package snapshot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/filetrail/filetrail/internal/gitstore"
	"github.com/filetrail/filetrail/internal/lineage"
)

// histEntry builds a lineage entry whose age is in minutes before a fixed
// reference time.
func histEntry(sha, path string, age int) lineage.Entry {
	return lineage.Entry{
		Commit: gitstore.CommitInfo{
			SHA:     sha,
			When:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).Add(-time.Duration(age) * time.Minute),
			Author:  gitstore.AuthorInfo{Name: "Test Author", Email: "test@example.com"},
			Message: "commit " + sha,
		},
		Path: path,
	}
}

func TestMaterialize_WritesAllSlots(t *testing.T) {
	history := lineage.History{
		histEntry("c3", "renamed.txt", 0),
		histEntry("c2", "original.txt", 10),
		histEntry("c1", "original.txt", 20),
	}
	backend := &gitstore.MockBackend{
		Blobs: map[string][]byte{
			"c3:renamed.txt":  []byte("v1\nv2\nv3\n"),
			"c2:original.txt": []byte("v1\nv2\n"),
			"c1:original.txt": []byte("v1\n"),
		},
	}

	set, err := Materialize(context.Background(), backend, history, NewMemStore())
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if !set.Complete() {
		t.Fatalf("Complete() = false, missing %v", set.Missing)
	}
	if got := set.Count(); got != 4 {
		t.Fatalf("Count() = %d, want 4", got)
	}

	// Slot 0 is the synthetic empty predecessor; the newest commit holds
	// the highest index.
	zero, err := set.Version(0)
	if err != nil {
		t.Fatalf("Version(0): %v", err)
	}
	if len(zero) != 0 {
		t.Errorf("Version(0) = %q, want empty", zero)
	}
	for index, want := range map[int]string{
		1: "v1\n",
		2: "v1\nv2\n",
		3: "v1\nv2\nv3\n",
	} {
		got, err := set.Version(index)
		if err != nil {
			t.Fatalf("Version(%d): %v", index, err)
		}
		if string(got) != want {
			t.Errorf("Version(%d) = %q, want %q", index, got, want)
		}
	}
}

func TestSet_Entry(t *testing.T) {
	history := lineage.History{
		histEntry("c3", "renamed.txt", 0),
		histEntry("c2", "original.txt", 10),
		histEntry("c1", "original.txt", 20),
	}
	set := &Set{Store: NewMemStore(), History: history}

	tests := []struct {
		name    string
		index   int
		wantSHA string
	}{
		{name: "SyntheticSlot", index: 0, wantSHA: ""},
		{name: "Oldest", index: 1, wantSHA: "c1"},
		{name: "Middle", index: 2, wantSHA: "c2"},
		{name: "Newest", index: 3, wantSHA: "c3"},
		{name: "OutOfRange", index: 4, wantSHA: ""},
		{name: "Negative", index: -1, wantSHA: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := set.Entry(tt.index)
			if tt.wantSHA == "" {
				if entry != nil {
					t.Fatalf("Entry(%d) = %+v, want nil", tt.index, entry)
				}
				return
			}
			if entry == nil || entry.Commit.SHA != tt.wantSHA {
				t.Fatalf("Entry(%d) = %+v, want %s", tt.index, entry, tt.wantSHA)
			}
		})
	}
}

func TestMaterialize_DirtyStoreFails(t *testing.T) {
	store := NewMemStore()
	if err := store.Write(0, []byte("leftover")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	set, err := Materialize(context.Background(), &gitstore.MockBackend{}, lineage.History{}, store)
	if !errors.Is(err, ErrStagingNotEmpty) {
		t.Fatalf("err = %v, want ErrStagingNotEmpty", err)
	}
	if set != nil {
		t.Errorf("set = %+v, want nil", set)
	}
}

func TestMaterialize_MissingBlobRecorded(t *testing.T) {
	history := lineage.History{
		histEntry("c3", "a.txt", 0),
		histEntry("c2", "a.txt", 10),
		histEntry("c1", "a.txt", 20),
	}
	// c2 has no blob for the path, as a merge resolution can produce.
	backend := &gitstore.MockBackend{
		Blobs: map[string][]byte{
			"c3:a.txt": []byte("v3\n"),
			"c1:a.txt": []byte("v1\n"),
		},
	}

	set, err := Materialize(context.Background(), backend, history, NewMemStore())
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if set.Complete() {
		t.Fatal("Complete() = true, expected a missing slot")
	}
	if len(set.Missing) != 1 {
		t.Fatalf("Missing = %v, want one entry", set.Missing)
	}

	slot := set.Missing[0]
	if slot.Index != 2 || slot.SHA != "c2" || slot.Path != "a.txt" {
		t.Errorf("Missing[0] = %+v, want slot 2 for c2 at a.txt", slot)
	}
	if !errors.Is(slot, gitstore.ErrNotFoundInTree) {
		t.Errorf("Missing[0] = %v, want ErrNotFoundInTree in the chain", slot.Err)
	}
	if !strings.Contains(slot.Error(), "version 2") {
		t.Errorf("Error() = %q, want the slot number", slot.Error())
	}

	// The surrounding slots still materialize.
	if got, err := set.Version(1); err != nil || string(got) != "v1\n" {
		t.Errorf("Version(1) = %q, %v, want v1", got, err)
	}
	if got, err := set.Version(3); err != nil || string(got) != "v3\n" {
		t.Errorf("Version(3) = %q, %v, want v3", got, err)
	}
	if _, err := set.Version(2); err == nil {
		t.Error("expected error reading the skipped slot")
	}
}

func TestMaterialize_EmptyHistory(t *testing.T) {
	set, err := Materialize(context.Background(), &gitstore.MockBackend{}, lineage.History{}, NewMemStore())
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if got := set.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
	zero, err := set.Version(0)
	if err != nil {
		t.Fatalf("Version(0): %v", err)
	}
	if len(zero) != 0 {
		t.Errorf("Version(0) = %q, want empty", zero)
	}
	if !set.Complete() {
		t.Error("Complete() = false on empty history")
	}
}

func TestMaterialize_BackendFailureSkipsEveryVersion(t *testing.T) {
	history := lineage.History{
		histEntry("c2", "a.txt", 0),
		histEntry("c1", "a.txt", 10),
	}
	backend := &gitstore.MockBackend{Err: errors.New("object store unavailable")}

	set, err := Materialize(context.Background(), backend, history, NewMemStore())
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if len(set.Missing) != 2 {
		t.Fatalf("Missing = %v, want both versions recorded", set.Missing)
	}
	// Slot 0 still exists, so the set remains usable for inspection.
	if _, err := set.Version(0); err != nil {
		t.Errorf("Version(0): %v", err)
	}
}

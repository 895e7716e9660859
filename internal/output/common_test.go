package output

import (
	"testing"
	"time"

	"github.com/filetrail/filetrail/internal/gitstore"
	"github.com/filetrail/filetrail/internal/lineage"
)

func TestLimitTop(t *testing.T) {
	items := []int{1, 2, 3}

	tests := []struct {
		name string
		top  int
		want []int
	}{
		{name: "NoLimitWhenZero", top: 0, want: []int{1, 2, 3}},
		{name: "NoLimitWhenNegative", top: -1, want: []int{1, 2, 3}},
		{name: "Limited", top: 2, want: []int{1, 2}},
		{name: "NoLimitWhenTopExceedsLength", top: 5, want: []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := limitTop(items, tt.top)
			if len(got) != len(tt.want) {
				t.Fatalf("len(limitTop(..., %d)) = %d, want %d", tt.top, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("limitTop(..., %d)[%d] = %d, want %d", tt.top, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestVersionOf(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		position int
		want     int
	}{
		{name: "NewestEntry", total: 5, position: 0, want: 5},
		{name: "OldestEntry", total: 5, position: 4, want: 1},
		{name: "SingleEntry", total: 1, position: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := versionOf(tt.total, tt.position); got != tt.want {
				t.Errorf("versionOf(%d, %d) = %d, want %d", tt.total, tt.position, got, tt.want)
			}
		})
	}
}

func TestRenamedAt(t *testing.T) {
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	report := &LineageReport{
		History: lineage.History{
			{Commit: gitstore.CommitInfo{SHA: "c3", When: when.Add(20 * time.Minute)}, Path: "renamed.txt"},
			{Commit: gitstore.CommitInfo{SHA: "c2", When: when.Add(10 * time.Minute)}, Path: "renamed.txt"},
			{Commit: gitstore.CommitInfo{SHA: "c1", When: when}, Path: "original.txt"},
		},
	}

	tests := []struct {
		name     string
		position int
		want     bool
	}{
		{name: "NewestNeverMarked", position: 0, want: false},
		{name: "SamePathUnmarked", position: 1, want: false},
		{name: "LastCommitUnderOldName", position: 2, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renamedAt(report, tt.position); got != tt.want {
				t.Errorf("renamedAt(report, %d) = %t, want %t", tt.position, got, tt.want)
			}
		})
	}
}

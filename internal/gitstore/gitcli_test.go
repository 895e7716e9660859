package gitstore

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// logRecord builds one pretty-format log record the way the configured
// logFormat emits it: a 0x1e prefix, NUL-separated fields, a newline.
func logRecord(fields ...string) []byte {
	return []byte("\x1e" + strings.Join(fields, "\x00") + "\n")
}

func TestParseLogRecords_MultipleCommits(t *testing.T) {
	body := []byte{}
	body = append(body, logRecord(
		"2222222222222222222222222222222222222222",
		"1111111111111111111111111111111111111111",
		"2024-05-01T12:10:00+09:00",
		"Alice",
		"alice@example.com",
		"extend notes",
	)...)
	body = append(body, logRecord(
		"1111111111111111111111111111111111111111",
		"",
		"2024-05-01T12:00:00+00:00",
		"Bob",
		"bob@example.com",
		"create notes",
	)...)

	commits, err := parseLogRecords(body)
	if err != nil {
		t.Fatalf("parseLogRecords: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("commits = %d, expected 2", len(commits))
	}

	first := commits[0]
	if first.SHA != "2222222222222222222222222222222222222222" {
		t.Errorf("first.SHA = %q", first.SHA)
	}
	if len(first.Parents) != 1 || first.Parents[0] != "1111111111111111111111111111111111111111" {
		t.Errorf("first.Parents = %v, expected one parent", first.Parents)
	}
	wantWhen := time.Date(2024, 5, 1, 12, 10, 0, 0, time.FixedZone("", 9*3600))
	if !first.When.Equal(wantWhen) {
		t.Errorf("first.When = %v, want %v", first.When, wantWhen)
	}
	if first.Author.Name != "Alice" || first.Author.Email != "alice@example.com" {
		t.Errorf("first.Author = %+v", first.Author)
	}
	if first.Message != "extend notes" {
		t.Errorf("first.Message = %q", first.Message)
	}

	second := commits[1]
	if len(second.Parents) != 0 {
		t.Errorf("second.Parents = %v, expected none for a root commit", second.Parents)
	}
	if second.IsMerge() {
		t.Error("second.IsMerge() = true for a root commit")
	}
}

func TestParseLogRecords_Empty(t *testing.T) {
	commits, err := parseLogRecords(nil)
	if err != nil {
		t.Fatalf("parseLogRecords: %v", err)
	}
	if len(commits) != 0 {
		t.Fatalf("commits = %d, expected 0", len(commits))
	}
}

func TestParseLogHeader_MergeParents(t *testing.T) {
	rec := logRecord(
		"3333333333333333333333333333333333333333",
		"1111111111111111111111111111111111111111 2222222222222222222222222222222222222222",
		"2024-05-01T13:00:00+00:00",
		"Alice",
		"alice@example.com",
		"merge branch",
	)

	commits, err := parseLogRecords(rec)
	if err != nil {
		t.Fatalf("parseLogRecords: %v", err)
	}
	if len(commits) != 1 {
		t.Fatalf("commits = %d, expected 1", len(commits))
	}
	if len(commits[0].Parents) != 2 {
		t.Fatalf("Parents = %v, expected 2", commits[0].Parents)
	}
	if !commits[0].IsMerge() {
		t.Error("IsMerge() = false for a two-parent commit")
	}
}

func TestParseLogHeader_Malformed(t *testing.T) {
	if _, err := parseLogHeader([]byte("just-a-sha\x00one-field")); err == nil {
		t.Error("expected error for a truncated header")
	}

	badDate := []byte("sha\x00\x00not-a-date\x00Alice\x00alice@example.com\x00msg")
	if _, err := parseLogHeader(badDate); err == nil {
		t.Error("expected error for an unparseable date")
	}
}

func TestParseNameStatus_Mixed(t *testing.T) {
	body := []byte{}

	// Modify a.txt
	body = append(body, []byte("M")...)
	body = append(body, 0)
	body = append(body, []byte("a.txt")...)
	body = append(body, 0)

	// Rename old.go -> new.go at similarity 100
	body = append(body, []byte("R100")...)
	body = append(body, 0)
	body = append(body, []byte("old.go")...)
	body = append(body, 0)
	body = append(body, []byte("new.go")...)
	body = append(body, 0)

	// Add b.txt
	body = append(body, []byte("A")...)
	body = append(body, 0)
	body = append(body, []byte("b.txt")...)
	body = append(body, 0)

	// Copy src.txt -> copy.txt at similarity 75
	body = append(body, []byte("C075")...)
	body = append(body, 0)
	body = append(body, []byte("src.txt")...)
	body = append(body, 0)
	body = append(body, []byte("copy.txt")...)
	body = append(body, 0)

	// Delete gone.txt
	body = append(body, []byte("D")...)
	body = append(body, 0)
	body = append(body, []byte("gone.txt")...)
	body = append(body, 0)

	entries, err := parseNameStatus(body)
	if err != nil {
		t.Fatalf("parseNameStatus: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("entries = %d, expected 5", len(entries))
	}

	want := []DiffEntry{
		{Kind: ChangeKindModified, Path: "a.txt"},
		{Kind: ChangeKindRenamed, Path: "new.go", OldPath: "old.go", Score: 100},
		{Kind: ChangeKindAdded, Path: "b.txt"},
		{Kind: ChangeKindCopied, Path: "copy.txt", OldPath: "src.txt", Score: 75},
		{Kind: ChangeKindDeleted, Path: "gone.txt"},
	}
	for i, w := range want {
		if entries[i] != w {
			t.Errorf("entries[%d] = %+v, want %+v", i, entries[i], w)
		}
	}
}

func TestParseNameStatus_Empty(t *testing.T) {
	entries, err := parseNameStatus(nil)
	if err != nil {
		t.Fatalf("parseNameStatus: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries = %d, expected 0", len(entries))
	}
}

func TestParseNameStatus_TruncatedRename(t *testing.T) {
	body := []byte("R100\x00old.go")
	if _, err := parseNameStatus(body); err == nil {
		t.Error("expected error for a rename entry missing its new path")
	}
}

func TestKindFromStatus(t *testing.T) {
	tests := []struct {
		status    string
		wantKind  ChangeKind
		wantScore int
	}{
		{status: "A", wantKind: ChangeKindAdded},
		{status: "M", wantKind: ChangeKindModified},
		{status: "D", wantKind: ChangeKindDeleted},
		{status: "R100", wantKind: ChangeKindRenamed, wantScore: 100},
		{status: "R060", wantKind: ChangeKindRenamed, wantScore: 60},
		{status: "C075", wantKind: ChangeKindCopied, wantScore: 75},
		// Typechange and other letters fall back to modified.
		{status: "T", wantKind: ChangeKindModified},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			kind, score := kindFromStatus(tt.status)
			if kind != tt.wantKind || score != tt.wantScore {
				t.Errorf("kindFromStatus(%q) = %v/%d, want %v/%d",
					tt.status, kind, score, tt.wantKind, tt.wantScore)
			}
		})
	}
}

func TestIsEmptyHeadError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "Nil", err: nil, want: false},
		{name: "UnbornBranch", err: errors.New("fatal: your current branch 'main' does not have any commits yet"), want: true},
		{name: "BadDefaultRevision", err: errors.New("fatal: bad default revision 'HEAD'"), want: true},
		{name: "Other", err: errors.New("fatal: not a git repository"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmptyHeadError(tt.err); got != tt.want {
				t.Errorf("isEmptyHeadError = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestNewCLIBackend_MissingPath(t *testing.T) {
	_, err := NewCLIBackend(t.TempDir()+"/does-not-exist", RenameDetectAggressive)
	if !errors.Is(err, ErrRepositoryNotFound) {
		t.Fatalf("err = %v, want ErrRepositoryNotFound", err)
	}
}

func TestCLIBackend_RepoPath(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewCLIBackend(dir, RenameDetectOff)
	if err != nil {
		t.Fatalf("NewCLIBackend: %v", err)
	}
	if backend.RepoPath() != dir {
		t.Errorf("RepoPath() = %q, want %q", backend.RepoPath(), dir)
	}
}

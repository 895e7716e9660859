package gitstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// CLIBackend reads repository history by shelling out to the git binary.
// It exists for very large repositories where go-git's object walking
// becomes the bottleneck. Results match NativeBackend, except that copy
// detection (git -C) is only available here.
type CLIBackend struct {
	path         string
	renameDetect RenameDetectMode
}

// NewCLIBackend returns a Backend that runs git commands in the
// repository at path.
func NewCLIBackend(path string, renameDetect RenameDetectMode) (*CLIBackend, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRepositoryNotFound, path)
	}
	return &CLIBackend{path: path, renameDetect: renameDetect}, nil
}

// RepoPath returns the repository location this backend was opened with.
func (b *CLIBackend) RepoPath() string {
	return b.path
}

// Each commit header is prefixed by 0x1e (record separator) with
// NUL-separated fields, so log output splits reliably into records.
const logFormat = "%x1e%H%x00%P%x00%cI%x00%an%x00%ae%x00%s%n"

// PathLog returns the non-merge commits that touch path, most recent first.
func (b *CLIBackend) PathLog(ctx context.Context, path string) ([]CommitInfo, error) {
	out, err := b.run(ctx, "log", "--no-color", "--no-merges", "--pretty=format:"+logFormat, "--", path)
	if err != nil {
		if isEmptyHeadError(err) {
			return nil, nil
		}
		return nil, err
	}
	return parseLogRecords(out)
}

// Ancestors returns the non-merge commits reachable from sha, inclusive,
// most recent first.
func (b *CLIBackend) Ancestors(ctx context.Context, sha string) ([]CommitInfo, error) {
	out, err := b.run(ctx, "log", "--no-color", "--no-merges", "--pretty=format:"+logFormat, sha)
	if err != nil {
		return nil, err
	}
	return parseLogRecords(out)
}

// TreeDiff compares the trees of two commits via git diff --name-status.
func (b *CLIBackend) TreeDiff(ctx context.Context, oldSHA, newSHA string) ([]DiffEntry, error) {
	args := []string{"diff", "--name-status", "-z"}
	switch b.renameDetect {
	case RenameDetectOff:
		args = append(args, "--no-renames")
	case RenameDetectSimple:
		args = append(args, "-M100%")
	default:
		// Match git's default threshold (60) and detect copies too.
		args = append(args, "-M60%", "-C")
	}
	args = append(args, oldSHA, newSHA)

	out, err := b.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parseNameStatus(out)
}

// ReadBlob returns the content of path in the commit's tree.
func (b *CLIBackend) ReadBlob(ctx context.Context, sha, path string) ([]byte, error) {
	out, err := b.run(ctx, "cat-file", "blob", sha+":"+path)
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "does not exist in") || strings.Contains(msg, "Not a valid object name") {
			return nil, fmt.Errorf("%w: %s at %s", ErrNotFoundInTree, path, sha)
		}
		return nil, err
	}
	return out, nil
}

// HeadFiles lists every file path in the HEAD tree.
func (b *CLIBackend) HeadFiles(ctx context.Context) ([]string, error) {
	out, err := b.run(ctx, "ls-tree", "-r", "--name-only", "-z", "HEAD")
	if err != nil {
		if isEmptyHeadError(err) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, p := range bytes.Split(out, []byte{0x00}) {
		if len(p) > 0 {
			files = append(files, string(p))
		}
	}
	return files, nil
}

// run executes a git command in the repository, returning stdout only.
// Blob content must not be mixed with stderr noise, so stderr is captured
// separately and folded into the error.
func (b *CLIBackend) run(ctx context.Context, args ...string) ([]byte, error) {
	full := append([]string{"-C", b.path}, args...)
	out, err := exec.CommandContext(ctx, "git", full...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(string(exitErr.Stderr))
			log.WithFields(log.Fields{"args": args}).Debug("git command failed: ", msg)
			return nil, fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}

// isEmptyHeadError matches git's complaint when HEAD has no commits yet.
func isEmptyHeadError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "does not have any commits yet") ||
		strings.Contains(msg, "bad default revision")
}

// parseLogRecords splits 0x1e-separated log output into commits.
func parseLogRecords(out []byte) ([]CommitInfo, error) {
	records := bytes.Split(out, []byte{0x1e})
	commits := make([]CommitInfo, 0, len(records))
	for _, rec := range records {
		rec = bytes.TrimSpace(rec)
		if len(rec) == 0 {
			continue
		}
		info, err := parseLogHeader(rec)
		if err != nil {
			return nil, err
		}
		commits = append(commits, info)
	}
	return commits, nil
}

// parseLogHeader decodes one NUL-separated pretty-format header: SHA,
// parent SHAs, committer date (RFC 3339), author name, email, subject.
func parseLogHeader(header []byte) (CommitInfo, error) {
	fields := bytes.SplitN(header, []byte{0x00}, 6)
	if len(fields) < 6 {
		return CommitInfo{}, fmt.Errorf("unexpected git log header format")
	}

	when, err := time.Parse(time.RFC3339, string(fields[2]))
	if err != nil {
		return CommitInfo{}, fmt.Errorf("parse committer date: %w", err)
	}

	var parents []string
	if p := strings.TrimSpace(string(fields[1])); p != "" {
		parents = strings.Fields(p)
	}

	return CommitInfo{
		SHA:     string(fields[0]),
		Parents: parents,
		When:    when,
		Author:  AuthorInfo{Name: string(fields[3]), Email: string(fields[4])},
		Message: string(fields[5]),
	}, nil
}

// parseNameStatus parses NUL-delimited `git diff --name-status -z` output.
// Format: STATUS\0PATH\0, or STATUS\0OLDPATH\0NEWPATH\0 for renames and
// copies, where STATUS carries a similarity score (e.g. "R100", "C75").
func parseNameStatus(data []byte) ([]DiffEntry, error) {
	parts := bytes.Split(data, []byte{0x00})

	entries := make([]DiffEntry, 0, len(parts)/2)
	i := 0

	for i < len(parts) {
		status := strings.TrimSpace(string(parts[i]))
		if status == "" {
			i++
			continue
		}

		if i+1 >= len(parts) {
			break
		}

		kind, score := kindFromStatus(status)

		if kind.IsRenameLike() {
			// Rename/Copy: STATUS\0OLDPATH\0NEWPATH
			if i+2 >= len(parts) {
				return nil, fmt.Errorf("unexpected diff output: %s entry missing new path", kind)
			}
			entries = append(entries, DiffEntry{
				Kind:    kind,
				Path:    string(parts[i+2]),
				OldPath: string(parts[i+1]),
				Score:   score,
			})
			i += 3
			continue
		}

		entries = append(entries, DiffEntry{Kind: kind, Path: string(parts[i+1]), Score: score})
		i += 2
	}

	return entries, nil
}

// kindFromStatus converts a git status letter with an optional similarity
// suffix into a ChangeKind and score.
func kindFromStatus(status string) (ChangeKind, int) {
	kind := ChangeKindModified
	switch status[0] {
	case 'A':
		kind = ChangeKindAdded
	case 'D':
		kind = ChangeKindDeleted
	case 'R':
		kind = ChangeKindRenamed
	case 'C':
		kind = ChangeKindCopied
	}
	if len(status) > 1 {
		if n, err := strconv.Atoi(status[1:]); err == nil {
			return kind, n
		}
	}
	return kind, 0
}

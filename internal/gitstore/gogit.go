package gitstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// NativeBackend reads repository history through go-git, with no
// dependency on an installed git binary.
type NativeBackend struct {
	repo         *git.Repository
	path         string
	renameDetect RenameDetectMode
}

// NewNativeBackend opens the repository at path with go-git.
func NewNativeBackend(path string, renameDetect RenameDetectMode) (*NativeBackend, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrRepositoryNotFound, path)
		}
		return nil, err
	}
	return &NativeBackend{repo: repo, path: path, renameDetect: renameDetect}, nil
}

// RepoPath returns the repository location this backend was opened with.
func (b *NativeBackend) RepoPath() string {
	return b.path
}

// PathLog returns the non-merge commits reachable from HEAD that touch path,
// most recent first. An unborn HEAD yields an empty log.
func (b *NativeBackend) PathLog(ctx context.Context, path string) ([]CommitInfo, error) {
	ref, err := b.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, err
	}
	iter, err := b.repo.Log(&git.LogOptions{
		From:       ref.Hash(),
		Order:      git.LogOrderCommitterTime,
		PathFilter: func(p string) bool { return p == path },
	})
	if err != nil {
		return nil, err
	}
	return collectCommits(ctx, iter)
}

// Ancestors returns the non-merge commits reachable from sha, inclusive,
// most recent first.
func (b *NativeBackend) Ancestors(ctx context.Context, sha string) ([]CommitInfo, error) {
	iter, err := b.repo.Log(&git.LogOptions{
		From:  plumbing.NewHash(sha),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, err
	}
	return collectCommits(ctx, iter)
}

// TreeDiff compares the trees of two commits with rename detection per the
// backend's configured mode. go-git pairs deletes with adds when detecting
// renames and never reports copies.
func (b *NativeBackend) TreeDiff(ctx context.Context, oldSHA, newSHA string) ([]DiffEntry, error) {
	oldTree, err := b.treeOf(oldSHA)
	if err != nil {
		return nil, err
	}
	newTree, err := b.treeOf(newSHA)
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTreeWithOptions(ctx, oldTree, newTree, diffTreeOptions(b.renameDetect))
	if err != nil {
		return nil, err
	}

	entries := make([]DiffEntry, 0, len(changes))
	for _, change := range changes {
		entries = append(entries, diffEntryOf(change))
	}
	return entries, nil
}

// ReadBlob returns the content of path in the commit's tree.
func (b *NativeBackend) ReadBlob(ctx context.Context, sha, path string) ([]byte, error) {
	tree, err := b.treeOf(sha)
	if err != nil {
		return nil, err
	}
	f, err := tree.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s at %s", ErrNotFoundInTree, path, sha)
		}
		return nil, err
	}
	rd, err := f.Reader()
	if err != nil {
		return nil, err
	}
	defer rd.Close()
	return io.ReadAll(rd)
}

// HeadFiles lists every file path in the HEAD tree.
func (b *NativeBackend) HeadFiles(ctx context.Context) ([]string, error) {
	ref, err := b.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, err
	}
	tree, err := b.treeOf(ref.Hash().String())
	if err != nil {
		return nil, err
	}

	var files []string
	err = tree.Files().ForEach(func(f *object.File) error {
		files = append(files, f.Name)
		return nil
	})
	return files, err
}

func (b *NativeBackend) treeOf(sha string) (*object.Tree, error) {
	commit, err := b.repo.CommitObject(plumbing.NewHash(sha))
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", sha, err)
	}
	return commit.Tree()
}

// collectCommits drains a commit iterator into CommitInfo values,
// dropping merge commits.
func collectCommits(ctx context.Context, iter object.CommitIter) ([]CommitInfo, error) {
	defer iter.Close()

	var commits []CommitInfo
	for {
		if err := ctx.Err(); err != nil {
			return commits, err
		}
		c, err := iter.Next()
		if err == io.EOF {
			return commits, nil
		}
		if err != nil {
			return commits, err
		}
		if c.NumParents() > 1 {
			continue
		}
		commits = append(commits, commitInfoOf(c))
	}
}

func commitInfoOf(c *object.Commit) CommitInfo {
	// Keep the first line of the commit message only.
	message := c.Message
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		message = message[:idx]
	}
	parents := make([]string, 0, len(c.ParentHashes))
	for _, h := range c.ParentHashes {
		parents = append(parents, h.String())
	}
	return CommitInfo{
		SHA:     c.Hash.String(),
		Parents: parents,
		When:    c.Committer.When,
		Author:  AuthorInfo{Name: c.Author.Name, Email: c.Author.Email},
		Message: message,
	}
}

// diffTreeOptions maps a RenameDetectMode onto go-git's diff options.
func diffTreeOptions(mode RenameDetectMode) *object.DiffTreeOptions {
	switch mode {
	case RenameDetectOff:
		return &object.DiffTreeOptions{DetectRenames: false}
	case RenameDetectSimple:
		return &object.DiffTreeOptions{DetectRenames: true, OnlyExactRenames: true}
	default:
		// Match git's default similarity threshold (60).
		return &object.DiffTreeOptions{DetectRenames: true, RenameScore: 60}
	}
}

// diffEntryOf classifies a go-git change by its endpoint names. A change
// with both endpoints present under differing names is a detected rename.
func diffEntryOf(change *object.Change) DiffEntry {
	from, to := change.From.Name, change.To.Name
	switch {
	case from == "" && to != "":
		return DiffEntry{Kind: ChangeKindAdded, Path: to}
	case from != "" && to == "":
		return DiffEntry{Kind: ChangeKindDeleted, Path: from}
	case from != to:
		return DiffEntry{Kind: ChangeKindRenamed, Path: to, OldPath: from}
	default:
		return DiffEntry{Kind: ChangeKindModified, Path: to}
	}
}

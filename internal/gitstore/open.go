package gitstore

import (
	"context"
	"fmt"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"
	log "github.com/sirupsen/logrus"
)

// DefaultCloneDir is where remote repositories land when no clone
// destination is configured.
const DefaultCloneDir = "cloned-repo"

// Open prepares a Backend for the repository named by opts.Source. Remote
// URLs are cloned into opts.CloneDir first; local paths are opened in
// place, searching parent directories for the .git directory.
func Open(ctx context.Context, opts OpenOptions) (Backend, error) {
	path := opts.Source
	if IsRemoteURL(opts.Source) {
		var err error
		path, err = cloneRemote(ctx, opts)
		if err != nil {
			return nil, err
		}
	}

	log.WithFields(log.Fields{"path": path, "engine": opts.Engine.String()}).Debug("opening repository")

	switch opts.Engine {
	case EngineGitCLI:
		return NewCLIBackend(path, opts.RenameDetect)
	default:
		return NewNativeBackend(path, opts.RenameDetect)
	}
}

// IsRemoteURL reports whether source names a remote repository rather
// than a local path.
func IsRemoteURL(source string) bool {
	for _, prefix := range []string{"http://", "https://", "git://", "ssh://", "git@"} {
		if strings.HasPrefix(source, prefix) {
			return true
		}
	}
	return false
}

// cloneRemote clones opts.Source into the clone directory. An existing
// directory is reused as-is rather than re-cloned.
func cloneRemote(ctx context.Context, opts OpenOptions) (string, error) {
	dir := opts.CloneDir
	if dir == "" {
		dir = DefaultCloneDir
	}

	if _, err := os.Stat(dir); err == nil {
		log.WithFields(log.Fields{"dir": dir}).Debug("reusing existing clone")
		return dir, nil
	}

	log.WithFields(log.Fields{"url": opts.Source, "dir": dir}).Debug("cloning remote repository")
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:               opts.Source,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		return "", fmt.Errorf("clone %s: %w", opts.Source, err)
	}
	return dir, nil
}

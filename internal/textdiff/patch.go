package textdiff

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// ErrPatchConflict means a patch or delta does not apply cleanly to its base.
var ErrPatchConflict = errors.New("patch does not apply")

// ApplyUnified applies a unified-diff document to base content and
// returns the patched content. An empty document applies as identity.
// A document that does not match the base fails with ErrPatchConflict.
func ApplyUnified(base, patchDoc string) (string, error) {
	files, _, err := gitdiff.Parse(strings.NewReader(patchDoc))
	if err != nil {
		return "", fmt.Errorf("parse patch: %w", err)
	}
	if len(files) == 0 {
		return base, nil
	}
	if len(files) > 1 {
		return "", fmt.Errorf("parse patch: expected a single-file patch, got %d files", len(files))
	}

	var out bytes.Buffer
	if err := gitdiff.Apply(&out, strings.NewReader(base), files[0]); err != nil {
		var conflict *gitdiff.Conflict
		if errors.As(err, &conflict) {
			return "", fmt.Errorf("%w: %v", ErrPatchConflict, conflict)
		}
		return "", err
	}
	return out.String(), nil
}

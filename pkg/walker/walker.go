// Package walker enumerates the regular files under a debug-symbol tree.
package walker

import (
	"path/filepath"

	"github.com/dsymtools/buildlink/pkg/errors"
	"github.com/dsymtools/buildlink/pkg/types"
)

// WalkFunc is called once per regular file with the containing directory
// and the bare filename. Returning an error stops the walk.
type WalkFunc func(dir, name string) error

// Walk recursively descends root, invoking fn for every regular file.
// Directories named skipDir are pruned entirely; they hold the outputs of
// prior runs and must not be rescanned as input. The traversal is
// read-only and deterministic (directory entries come back sorted).
func Walk(fsys types.FS, root, skipDir string, fn WalkFunc) error {
	entries, err := fsys.ReadDir(root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrWalk, "cannot read directory %s", root)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			if entry.Name() == skipDir {
				continue
			}
			if err := Walk(fsys, filepath.Join(root, entry.Name()), skipDir, fn); err != nil {
				return err
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if err := fn(root, entry.Name()); err != nil {
			return err
		}
	}

	return nil
}

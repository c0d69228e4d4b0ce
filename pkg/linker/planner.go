// Package linker derives and materializes the build-ID-indexed hard links.
package linker

import (
	"path/filepath"
	"strings"

	"github.com/dsymtools/buildlink/pkg/errors"
	"github.com/dsymtools/buildlink/pkg/types"
)

// DebugSuffix is appended to every link name in the index.
const DebugSuffix = ".debug"

// Plan is a single computed link operation: source file, destination
// directory and destination path inside the index root.
type Plan struct {
	Source string
	Dir    string
	Path   string
}

// NewPlan computes the canonical destination for a build identifier:
// <indexRoot>/<prefix>/<rest>.debug. Both identifier parts are validated
// before they touch a path; a part containing '.' or a separator could
// escape the index root, and since extraction only ever yields hex
// digits, seeing one here means corrupted input rather than a bad file.
func NewPlan(indexRoot, source string, id types.BuildID) (Plan, error) {
	if err := validatePart(id.Prefix); err != nil {
		return Plan{}, err
	}
	if err := validatePart(id.Rest); err != nil {
		return Plan{}, err
	}

	dir := filepath.Join(indexRoot, id.Prefix)
	return Plan{
		Source: source,
		Dir:    dir,
		Path:   filepath.Join(dir, id.Rest+DebugSuffix),
	}, nil
}

func validatePart(part string) error {
	if part == "" {
		return errors.New(errors.ErrInvalidInput, "build identifier part is empty")
	}
	if strings.Contains(part, ".") {
		return errors.Newf(errors.ErrInvalidInput, "build identifier part %q contains '.'", part)
	}
	if strings.ContainsAny(part, `/\`) {
		return errors.Newf(errors.ErrInvalidInput, "build identifier part %q contains a path separator", part)
	}
	return nil
}

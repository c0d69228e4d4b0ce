package testutil

import (
	"github.com/dsymtools/buildlink/pkg/filesystem"
	"github.com/dsymtools/buildlink/pkg/types"
	"github.com/spf13/afero"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

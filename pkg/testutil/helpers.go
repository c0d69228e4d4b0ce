package testutil

import (
	"path/filepath"
	"testing"

	"github.com/dsymtools/buildlink/pkg/types"
	"github.com/stretchr/testify/require"
)

// MustWriteFile writes a file (creating parent directories) and fails the
// test on error.
func MustWriteFile(t *testing.T, fs types.FS, path string, content []byte) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, fs.WriteFile(path, content, 0644))
}

// Exists reports whether a path exists on the filesystem under test.
func Exists(t *testing.T, fs types.FS, path string) bool {
	t.Helper()
	_, err := fs.Stat(path)
	return err == nil
}

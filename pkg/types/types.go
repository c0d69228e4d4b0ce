package types

import (
	"io/fs"
)

// FS abstracts the filesystem operations buildlink performs so tests can run
// against an in-memory implementation.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Link operations
	Link(oldname, newname string) error

	// Other operations
	Remove(name string) error

	// Optional operations - implementations should check for support
	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// BuildID is an extracted build identifier, already split into the
// 2-hex-character directory prefix and the remaining hex digits.
type BuildID struct {
	Prefix string
	Rest   string
}

// String returns the full hexadecimal identifier.
func (id BuildID) String() string {
	return id.Prefix + id.Rest
}

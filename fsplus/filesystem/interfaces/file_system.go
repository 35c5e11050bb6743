package interfaces

import (
	"io"
	"os"
)

// File is an open file handle. *os.File satisfies it.
type File interface {
	io.Reader
	io.Writer
	io.ReaderAt
	io.WriterAt
	io.Closer
	Name() string
}

// FS defines the host filesystem primitives the fsplus components consume.
// Every component is a decorator over an FS; nothing reaches the os package
// directly, so tests can substitute a fault-injecting implementation.
type FS interface {
	// Status queries
	Stat(path string) (os.FileInfo, error)
	Lstat(path string) (os.FileInfo, error)

	// ReadDirNames returns the entry names of a directory in unspecified order
	ReadDirNames(path string) ([]string, error)

	// Realpath returns the absolute form of path with every symlink resolved
	Realpath(path string) (string, error)

	// Mutations
	Rename(oldPath, newPath string) error
	MkdirAll(path string, perm os.FileMode) error
	RemoveAll(path string) error

	// Descriptors
	Open(path string) (File, error)
	OpenFile(path string, flag int, perm os.FileMode) (File, error)

	// Whole-file helpers
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
}

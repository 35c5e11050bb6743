// Package osfs provides the production implementation of interfaces.FS on
// top of the os package.
package osfs

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/interfaces"
)

// OS implements interfaces.FS using the host operating system.
type OS struct{}

var _ interfaces.FS = OS{}

// New returns the host filesystem.
func New() OS {
	return OS{}
}

func (OS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (OS) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

func (OS) ReadDirNames(path string) ([]string, error) {
	dir, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	return dir.Readdirnames(-1)
}

func (OS) Realpath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func (OS) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func (OS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (OS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (OS) Open(path string) (interfaces.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (OS) OpenFile(path string, flag int, perm os.FileMode) (interfaces.File, error) {
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// Package osfstest provides FS wrappers for tests of code built on interfaces.FS.
package osfstest

import (
	"os"
	"sync"

	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/interfaces"
)

// Op names an FS method that Faulty can fail
type Op string

const (
	OpStat         Op = "stat"
	OpLstat        Op = "lstat"
	OpReadDirNames Op = "readdir"
	OpRename       Op = "rename"
	OpMkdirAll     Op = "mkdir"
	OpOpen         Op = "open"
	OpOpenFile     Op = "openfile"
)

type faultKey struct {
	op   Op
	path string
}

// Faulty wraps an FS and fails chosen operations on chosen paths. It also
// counts descriptors that are open, so callers can check none leak.
type Faulty struct {
	interfaces.FS

	mu     sync.Mutex
	faults map[faultKey]error
	open   int
}

var _ interfaces.FS = (*Faulty)(nil)

// NewFaulty wraps fsys
func NewFaulty(fsys interfaces.FS) *Faulty {
	return &Faulty{FS: fsys, faults: make(map[faultKey]error)}
}

// Fail makes op on path return err
func (f *Faulty) Fail(op Op, path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[faultKey{op, path}] = err
}

// OpenDescriptors returns the number of files opened through f and not yet closed
func (f *Faulty) OpenDescriptors() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *Faulty) fault(op Op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.faults[faultKey{op, path}]
}

func (f *Faulty) Stat(path string) (os.FileInfo, error) {
	if err := f.fault(OpStat, path); err != nil {
		return nil, err
	}
	return f.FS.Stat(path)
}

func (f *Faulty) Lstat(path string) (os.FileInfo, error) {
	if err := f.fault(OpLstat, path); err != nil {
		return nil, err
	}
	return f.FS.Lstat(path)
}

func (f *Faulty) ReadDirNames(path string) ([]string, error) {
	if err := f.fault(OpReadDirNames, path); err != nil {
		return nil, err
	}
	return f.FS.ReadDirNames(path)
}

func (f *Faulty) Rename(oldPath, newPath string) error {
	if err := f.fault(OpRename, newPath); err != nil {
		return err
	}
	return f.FS.Rename(oldPath, newPath)
}

func (f *Faulty) MkdirAll(path string, perm os.FileMode) error {
	if err := f.fault(OpMkdirAll, path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *Faulty) Open(path string) (interfaces.File, error) {
	if err := f.fault(OpOpen, path); err != nil {
		return nil, err
	}
	file, err := f.FS.Open(path)
	if err != nil {
		return nil, err
	}
	return f.track(file), nil
}

func (f *Faulty) OpenFile(path string, flag int, perm os.FileMode) (interfaces.File, error) {
	if err := f.fault(OpOpenFile, path); err != nil {
		return nil, err
	}
	file, err := f.FS.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}
	return f.track(file), nil
}

func (f *Faulty) track(file interfaces.File) interfaces.File {
	f.mu.Lock()
	f.open++
	f.mu.Unlock()
	return &trackedFile{File: file, owner: f}
}

type trackedFile struct {
	interfaces.File
	owner *Faulty
	once  sync.Once
}

func (t *trackedFile) Close() error {
	t.once.Do(func() {
		t.owner.mu.Lock()
		t.owner.open--
		t.owner.mu.Unlock()
	})
	return t.File.Close()
}

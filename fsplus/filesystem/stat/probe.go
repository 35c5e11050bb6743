// Package stat wraps status queries so that absence and access failures
// become a false result instead of an error, and exposes the predicates built
// on top of them.
package stat

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	internal "github.com/ZanzyTHEbar/fsplus/fsplus"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/common"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/interfaces"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/types"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Probe answers status queries against an FS. The case-sensitivity flag is
// computed at most once per Probe.
type Probe struct {
	fs       interfaces.FS
	casePath string
	logger   zerolog.Logger

	caseOnce        sync.Once
	caseInsensitive bool
}

// NewProbe creates a probe over fsys. casePath is the file used to detect
// case sensitivity; empty means the running executable.
func NewProbe(fsys interfaces.FS, casePath string) *Probe {
	return &Probe{
		fs:       fsys,
		casePath: casePath,
		logger:   internal.ComponentLogger("stat"),
	}
}

// FS returns the filesystem the probe queries
func (p *Probe) FS() interfaces.FS {
	return p.fs
}

// Query stats path, following symlinks
func (p *Probe) Query(path string) types.StatusResult {
	return p.query(path, p.fs.Stat)
}

// LQuery stats path without following a trailing symlink
func (p *Probe) LQuery(path string) types.StatusResult {
	return p.query(path, p.fs.Lstat)
}

func (p *Probe) query(path string, statFn func(string) (os.FileInfo, error)) types.StatusResult {
	if !common.IsPathValid(path) {
		return types.StatusResult{State: types.StateAbsent}
	}

	info, err := statFn(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.StatusResult{State: types.StateAbsent}
		}
		p.logger.Debug().Str("path", path).Err(err).Msg("status query failed")
		return types.StatusResult{State: types.StateFailed, Err: err}
	}

	return types.StatusResult{State: types.StateFound, Status: NewStatus(path, info)}
}

// StatNoException returns the status of path, or false if it does not exist
// or cannot be queried
func (p *Probe) StatNoException(path string) (types.Status, bool) {
	res := p.Query(path)
	return res.Status, res.Ok()
}

// LstatNoException is StatNoException without following a trailing symlink
func (p *Probe) LstatNoException(path string) (types.Status, bool) {
	res := p.LQuery(path)
	return res.Status, res.Ok()
}

// NewStatus converts a FileInfo into a Status
func NewStatus(path string, info os.FileInfo) types.Status {
	dev, ino := identity(info)
	mode := info.Mode()
	return types.Status{
		Path:      path,
		Kind:      types.KindOf(mode),
		Dev:       dev,
		Ino:       ino,
		Size:      info.Size(),
		Mode:      mode,
		IsSymlink: mode&os.ModeSymlink != 0,
		ModTime:   info.ModTime(),
		Info:      info,
	}
}

// Exists reports whether a file or folder exists at path
func (p *Probe) Exists(path string) bool {
	_, ok := p.StatNoException(path)
	return ok
}

// IsDirectory reports whether path exists and is a directory
func (p *Probe) IsDirectory(path string) bool {
	st, ok := p.StatNoException(path)
	return ok && st.IsDirectory()
}

// IsFile reports whether path exists and is a regular file
func (p *Probe) IsFile(path string) bool {
	st, ok := p.StatNoException(path)
	return ok && st.IsFile()
}

// IsSymbolicLink reports whether path itself is a symbolic link
func (p *Probe) IsSymbolicLink(path string) bool {
	st, ok := p.LstatNoException(path)
	return ok && st.IsSymlink
}

// IsExecutable reports whether the others-execute bit is set on path
func (p *Probe) IsExecutable(path string) bool {
	st, ok := p.StatNoException(path)
	return ok && st.Mode.Perm()&0o001 != 0
}

// Size returns the size of path in bytes, or -1 when it cannot be queried
func (p *Probe) Size(path string) int64 {
	st, ok := p.StatNoException(path)
	if !ok {
		return -1
	}
	return st.Size
}

// IsDirectoryAsync delivers IsDirectory on a channel that receives exactly one value
func (p *Probe) IsDirectoryAsync(path string) <-chan bool {
	done := common.NewCompletion[bool]()
	if !common.IsPathValid(path) {
		done.Finish(false)
		return done.Done()
	}
	go func() {
		done.Finish(p.IsDirectory(path))
	}()
	return done.Done()
}

// IsSymbolicLinkAsync delivers IsSymbolicLink on a channel that receives exactly one value
func (p *Probe) IsSymbolicLinkAsync(path string) <-chan bool {
	done := common.NewCompletion[bool]()
	if !common.IsPathValid(path) {
		done.Finish(false)
		return done.Done()
	}
	go func() {
		done.Finish(p.IsSymbolicLink(path))
	}()
	return done.Done()
}

// CaseInsensitive reports whether the filesystem holding the probe path
// ignores case. The answer is computed on first use and cached.
func (p *Probe) CaseInsensitive() bool {
	p.caseOnce.Do(func() {
		path := p.casePath
		if path == "" {
			exe, err := os.Executable()
			if err != nil {
				p.logger.Debug().Err(err).Msg("unable to locate executable for case probe")
				return
			}
			path = exe
		}
		p.caseInsensitive = p.sameFileInBothCases(path)
		p.logger.Debug().Str("path", path).Bool("insensitive", p.caseInsensitive).Msg("case sensitivity probed")
	})
	return p.caseInsensitive
}

// CaseSensitive is the negation of CaseInsensitive
func (p *Probe) CaseSensitive() bool {
	return !p.CaseInsensitive()
}

func (p *Probe) sameFileInBothCases(path string) bool {
	lower, lowerOk := p.StatNoException(strings.ToLower(path))
	upper, upperOk := p.StatNoException(strings.ToUpper(path))
	if !lowerOk || !upperOk {
		return false
	}
	return lower.SameFile(upper)
}

// CaseInsensitiveAt probes the filesystem holding dir by creating a
// temporary file there and looking it up under an upper-cased name.
func (p *Probe) CaseInsensitiveAt(dir string) (bool, error) {
	if err := common.ValidatePath(dir); err != nil {
		return false, err
	}

	name := "fsplus-case-probe-" + uuid.NewString()
	probePath := filepath.Join(dir, name)
	if err := p.fs.WriteFile(probePath, nil, 0o600); err != nil {
		return false, fmt.Errorf("failed to create case probe in %s: %w", dir, err)
	}
	defer func() {
		if err := p.fs.RemoveAll(probePath); err != nil {
			p.logger.Warn().Str("path", probePath).Err(err).Msg("failed to remove case probe")
		}
	}()

	original, ok := p.StatNoException(probePath)
	if !ok {
		return false, fmt.Errorf("case probe vanished: %s", probePath)
	}
	upper, ok := p.StatNoException(filepath.Join(dir, strings.ToUpper(name)))
	if !ok {
		return false, nil
	}
	return original.SameFile(upper), nil
}

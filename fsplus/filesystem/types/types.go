package types

import (
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

// FileKind classifies the object a status query found
type FileKind string

const (
	KindFile      FileKind = "file"
	KindDirectory FileKind = "directory"
	KindSymlink   FileKind = "symlink"
	KindOther     FileKind = "other"
)

// KindOf maps a file mode to its FileKind
func KindOf(mode os.FileMode) FileKind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDirectory
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindOther
	}
}

// Status is the metadata returned by a successful status query.
// Dev and Ino are zero on platforms that do not expose them; use
// SameFile for identity checks.
type Status struct {
	Path      string      `json:"path"`
	Kind      FileKind    `json:"kind"`
	Dev       uint64      `json:"dev"`
	Ino       uint64      `json:"ino"`
	Size      int64       `json:"size"`
	Mode      os.FileMode `json:"mode"`
	IsSymlink bool        `json:"is_symlink"`
	ModTime   time.Time   `json:"mod_time"`

	Info os.FileInfo `json:"-"`
}

func (s Status) IsFile() bool      { return s.Kind == KindFile }
func (s Status) IsDirectory() bool { return s.Kind == KindDirectory }

// SameFile reports whether both statuses describe the same underlying file
func (s Status) SameFile(other Status) bool {
	if s.Info != nil && other.Info != nil {
		return os.SameFile(s.Info, other.Info)
	}
	return s.Dev == other.Dev && s.Ino == other.Ino && (s.Dev != 0 || s.Ino != 0)
}

// StatusState discriminates a StatusResult
type StatusState int

const (
	StateAbsent StatusState = iota
	StateFound
	StateFailed
)

func (s StatusState) String() string {
	switch s {
	case StateFound:
		return "found"
	case StateFailed:
		return "failed"
	default:
		return "absent"
	}
}

// StatusResult is the outcome of a status query: Found carries Status,
// Failed carries the suppressed error, Absent carries neither.
type StatusResult struct {
	State  StatusState
	Status Status
	Err    error
}

// Ok reports whether the query found something
func (r StatusResult) Ok() bool {
	return r.State == StateFound
}

// Result carries the outcome of an asynchronous operation
type Result[T any] struct {
	Value T
	Err   error
}

// TreeSize aggregates the regular files below a directory
type TreeSize struct {
	Root        string        `json:"root"`
	Files       int64         `json:"files"`
	Directories int64         `json:"directories"`
	Bytes       int64         `json:"bytes"`
	Duration    time.Duration `json:"duration"`
}

// Human returns Bytes formatted for display, e.g. "1.2 MB"
func (t TreeSize) Human() string {
	if t.Bytes <= 0 {
		return humanize.Bytes(0)
	}
	return humanize.Bytes(uint64(t.Bytes))
}

// Operation pairs a source with its destination for batch copy and move
type Operation struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// BatchResult summarizes a batch of file operations
type BatchResult struct {
	Success   bool          `json:"success"`
	Processed int           `json:"processed"`
	Failed    int           `json:"failed"`
	Errors    []error       `json:"-"`
	Duration  time.Duration `json:"duration"`
}

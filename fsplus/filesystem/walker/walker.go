// Package walker enumerates directory trees and flat directory listings.
//
// Entries of a directory are always visited in case-insensitive collation
// order of their names, so both traversal variants produce the same pre-order
// sequence for the same tree.
package walker

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	internal "github.com/ZanzyTHEbar/fsplus/fsplus"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/common"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/interfaces"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/options"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/stat"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/types"

	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FileFunc is called with the full path of every regular file visited
type FileFunc func(path string)

// DirFunc is called with the full path of every directory visited. Returning
// false prunes the directory: none of its descendants are visited.
type DirFunc func(path string) bool

// Walker traverses trees through a Probe
type Walker struct {
	probe  *stat.Probe
	fs     interfaces.FS
	opts   options.TraversalOptions
	logger zerolog.Logger

	// collate.Collator is not safe for concurrent use
	collateMu sync.Mutex
	collator  *collate.Collator

	metrics common.TraversalMetrics
}

// NewWalker creates a walker over the probe's filesystem
func NewWalker(probe *stat.Probe, opts options.TraversalOptions) *Walker {
	return &Walker{
		probe:    probe,
		fs:       probe.FS(),
		opts:     opts,
		logger:   internal.ComponentLogger("walker"),
		collator: collate.New(language.Und),
	}
}

// Metrics returns the traversal counters accumulated by this walker
func (w *Walker) Metrics() map[string]interface{} {
	return w.metrics.GetMetrics()
}

// SortNames orders names in place by locale-aware comparison of their
// lower-cased form. Names that collate equal keep byte order.
func (w *Walker) SortNames(names []string) {
	keys := make(map[string]string, len(names))
	for _, name := range names {
		keys[name] = strings.ToLower(name)
	}

	w.collateMu.Lock()
	defer w.collateMu.Unlock()

	slices.SortFunc(names, func(a, b string) int {
		if c := w.collator.CompareString(keys[a], keys[b]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}

// children reads dir and returns the full paths of its entries in visiting order
func (w *Walker) children(dir string) ([]string, error) {
	names, err := w.fs.ReadDirNames(dir)
	if err != nil {
		return nil, err
	}
	w.SortNames(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// walkStats collects per-walk counts for metrics
type walkStats struct {
	start   time.Time
	files   int64
	dirs    int64
	skipped int64
}

func newWalkStats() *walkStats {
	return &walkStats{start: time.Now()}
}

func (w *Walker) record(s *walkStats, err error) {
	w.metrics.Record(s.start, err, s.files, s.dirs, s.skipped)
	w.logger.Debug().
		Int64("files", s.files).
		Int64("dirs", s.dirs).
		Int64("skipped", s.skipped).
		Dur("elapsed", time.Since(s.start)).
		Msg("traversal finished")
}

func alwaysDescend(onFile FileFunc) DirFunc {
	return func(path string) bool {
		onFile(path)
		return true
	}
}

// classify returns the kind used for visiting path: the link status, or the
// target's status when path is a symlink whose target can be queried
func (w *Walker) classify(path string) (types.FileKind, error) {
	res := w.probe.LQuery(path)
	switch res.State {
	case types.StateFailed:
		return types.KindOther, res.Err
	case types.StateAbsent:
		return types.KindOther, nil
	}

	if res.Status.IsSymlink {
		if target, ok := w.probe.StatNoException(path); ok {
			return target.Kind, nil
		}
	}
	return res.Status.Kind, nil
}

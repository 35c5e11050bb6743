package walker

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/common"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/options"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/types"

	"github.com/bmatcuk/doublestar/v4"
)

// FilterExtensions keeps the names whose extension is one of exts. Extensions
// are matched exactly after giving each a single leading dot; "" matches names
// without an extension. A nil exts keeps every name.
func FilterExtensions(names []string, exts []string) []string {
	if exts == nil {
		return names
	}

	allowed := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		allowed[common.NormalizeExtension(ext)] = struct{}{}
	}

	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := allowed[common.Extname(name)]; ok {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// ListSync returns the full paths of the entries of root, filtered by opts and
// sorted case-insensitively. A root that is not a directory lists as empty.
func (w *Walker) ListSync(root string, opts options.ListOptions) ([]string, error) {
	if !w.probe.IsDirectory(root) {
		return []string{}, nil
	}
	return w.list(root, opts)
}

// List is the asynchronous ListSync. Unlike ListSync, a root that cannot be
// read is reported as an error.
func (w *Walker) List(ctx context.Context, root string, opts options.ListOptions) <-chan types.Result[[]string] {
	done := common.NewCompletion[types.Result[[]string]]()

	go func() {
		if err := ctx.Err(); err != nil {
			done.Finish(types.Result[[]string]{Err: err})
			return
		}
		paths, err := w.list(root, opts)
		done.Finish(types.Result[[]string]{Value: paths, Err: err})
	}()

	return done.Done()
}

func (w *Walker) list(root string, opts options.ListOptions) ([]string, error) {
	if err := common.ValidatePath(root); err != nil {
		return nil, err
	}

	names, err := w.fs.ReadDirNames(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}

	names = FilterExtensions(names, opts.Extensions)
	if opts.Pattern != "" {
		if names, err = filterPattern(names, opts.Pattern); err != nil {
			return nil, err
		}
	}
	w.SortNames(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(root, name)
	}
	return paths, nil
}

func filterPattern(names []string, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid list pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	matched := make([]string, 0, len(names))
	for _, name := range names {
		if doublestar.MatchUnvalidated(pattern, name) {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

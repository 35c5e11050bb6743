package walker

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/common"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/types"

	"github.com/sourcegraph/conc"
)

// TraverseTreeSync visits every entry below root depth-first, each directory
// before its descendants. Symlinks are classified by their target when it can
// be queried; entries that are neither files nor directories are skipped.
// A nil onDirectory reports directories through onFile and always descends;
// FileFunc has no result, so it cannot prune.
// When root is not a directory nothing is visited.
func (w *Walker) TraverseTreeSync(root string, onFile FileFunc, onDirectory DirFunc) error {
	if !w.probe.IsDirectory(root) {
		return nil
	}
	if onDirectory == nil {
		onDirectory = alwaysDescend(onFile)
	}

	s := newWalkStats()
	err := w.traverseSync(root, onFile, onDirectory, s)
	w.record(s, err)
	return err
}

func (w *Walker) traverseSync(dir string, onFile FileFunc, onDirectory DirFunc, s *walkStats) error {
	children, err := w.children(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, child := range children {
		kind, err := w.classify(child)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", child, err)
		}

		switch kind {
		case types.KindDirectory:
			s.dirs++
			if onDirectory(child) {
				if err := w.traverseSync(child, onFile, onDirectory, s); err != nil {
					return err
				}
			}
		case types.KindFile:
			s.files++
			onFile(child)
		default:
			s.skipped++
		}
	}
	return nil
}

// ListTreeSync returns every file and every visited directory below root in
// traversal order
func (w *Walker) ListTreeSync(root string) ([]string, error) {
	paths := []string{}
	err := w.TraverseTreeSync(root, func(path string) {
		paths = append(paths, path)
	}, nil)
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// TraverseTree is the asynchronous TraverseTreeSync. Work items are processed
// one at a time; a directory's children go to the front of the queue, so the
// visiting order matches TraverseTreeSync. Callbacks run on the walker's
// goroutine. An entry whose status or listing fails is skipped. If root cannot
// be read the walk completes immediately with a nil error.
//
// The returned channel receives exactly one value: nil once the queue drains,
// ctx.Err() on cancellation, or an error if a callback panicked.
func (w *Walker) TraverseTree(ctx context.Context, root string, onFile FileFunc, onDirectory DirFunc) <-chan error {
	done := common.NewCompletion[error]()
	if onDirectory == nil {
		onDirectory = alwaysDescend(onFile)
	}

	go func() {
		var (
			wg  conc.WaitGroup
			err error
		)
		wg.Go(func() {
			err = w.drain(ctx, root, onFile, onDirectory)
		})
		if recovered := wg.WaitAndRecover(); recovered != nil {
			err = fmt.Errorf("traversal of %s panicked: %v", root, recovered.Value)
		}
		done.Finish(err)
	}()

	return done.Done()
}

func (w *Walker) drain(ctx context.Context, root string, onFile FileFunc, onDirectory DirFunc) error {
	if !common.IsPathValid(root) {
		return nil
	}

	queue, err := w.children(root)
	if err != nil {
		w.logger.Debug().Str("root", root).Err(err).Msg("root directory unreadable")
		return nil
	}

	s := newWalkStats()
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			w.record(s, err)
			return err
		}

		path := queue[0]
		queue = queue[1:]

		res := w.probe.Query(path)
		if !res.Ok() {
			s.skipped++
			if res.State == types.StateFailed {
				w.logger.Debug().Str("path", path).Err(res.Err).Msg("skipping entry")
			}
			continue
		}

		switch {
		case res.Status.IsFile():
			s.files++
			onFile(path)
		case res.Status.IsDirectory():
			s.dirs++
			if !onDirectory(path) {
				continue
			}
			children, err := w.children(path)
			if err != nil {
				s.skipped++
				w.logger.Debug().Str("path", path).Err(err).Msg("skipping unreadable directory")
				continue
			}
			queue = append(children, queue...)
		default:
			s.skipped++
		}
	}

	w.record(s, nil)
	return nil
}

// ListTree is the asynchronous ListTreeSync
func (w *Walker) ListTree(ctx context.Context, root string) <-chan types.Result[[]string] {
	done := common.NewCompletion[types.Result[[]string]]()

	go func() {
		paths := []string{}
		err := <-w.TraverseTree(ctx, root, func(path string) {
			paths = append(paths, path)
		}, nil)
		if err != nil {
			done.Finish(types.Result[[]string]{Err: err})
			return
		}
		done.Finish(types.Result[[]string]{Value: paths})
	}()

	return done.Done()
}

package walker

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/common"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/types"

	"github.com/charlievieth/fastwalk"
)

// TreeSize counts the regular files, directories and bytes below root. The
// subtree is scanned in parallel straight from the host filesystem, symlinks
// are not followed, and unreadable entries are left out of the totals.
func (w *Walker) TreeSize(ctx context.Context, root string) (types.TreeSize, error) {
	if err := common.ValidatePath(root); err != nil {
		return types.TreeSize{}, err
	}

	start := time.Now()
	cleanRoot := filepath.Clean(root)
	var files, dirs, bytes, skipped atomic.Int64

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			skipped.Add(1)
			w.logger.Debug().Str("path", path).Err(err).Msg("size scan skipped entry")
			return nil
		}
		if filepath.Clean(path) == cleanRoot {
			return nil
		}

		switch {
		case d.IsDir():
			dirs.Add(1)
		case d.Type().IsRegular():
			info, err := d.Info()
			if err != nil {
				skipped.Add(1)
				return nil
			}
			files.Add(1)
			bytes.Add(info.Size())
		}
		return nil
	})

	size := types.TreeSize{
		Root:        root,
		Files:       files.Load(),
		Directories: dirs.Load(),
		Bytes:       bytes.Load(),
		Duration:    time.Since(start),
	}
	w.metrics.Record(start, err, size.Files, size.Directories, skipped.Load())
	if err != nil {
		return size, fmt.Errorf("failed to size %s: %w", root, err)
	}
	return size, nil
}

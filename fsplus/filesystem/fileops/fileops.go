// Package fileops moves, copies, creates and removes files and directory trees.
package fileops

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	internal "github.com/ZanzyTHEbar/fsplus/fsplus"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/common"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/interfaces"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/options"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/stat"

	"github.com/rs/zerolog"
)

const defaultDirPerm os.FileMode = 0o755

// FileOps performs mutations through the probe's filesystem
type FileOps struct {
	probe   *stat.Probe
	fs      interfaces.FS
	opts    options.CopyOptions
	logger  zerolog.Logger
	metrics common.FileOperationMetrics
}

// NewFileOps creates a new file operations instance. A non-positive buffer
// size falls back to the package default.
func NewFileOps(probe *stat.Probe, opts options.CopyOptions) *FileOps {
	if opts.BufferSize <= 0 {
		opts.BufferSize = internal.DefaultCopyBufferSize
	}
	return &FileOps{
		probe:  probe,
		fs:     probe.FS(),
		opts:   opts,
		logger: internal.ComponentLogger("fileops"),
	}
}

// GetMetrics returns the operation counters accumulated so far
func (fo *FileOps) GetMetrics() map[string]interface{} {
	return fo.metrics.GetMetrics()
}

func (fo *FileOps) done(start time.Time, op string, err error, bytes int64) {
	fo.metrics.UpdateMetrics(start, err, bytes)
	if err != nil {
		fo.logger.Debug().Str("op", op).Err(err).Msg("operation failed")
	}
}

// moveTargetValid reports whether renaming source onto target is allowed:
// either path is missing, or both name the same file and differ only in case
func (fo *FileOps) moveTargetValid(source, target string) bool {
	oldStat, oldOk := fo.probe.StatNoException(source)
	newStat, newOk := fo.probe.StatNoException(target)
	if !oldOk || !newOk {
		return true
	}
	return strings.EqualFold(source, target) && oldStat.SameFile(newStat)
}

// MoveSync renames source to target, creating target's parent directories
// first. An existing, distinct target fails with an *common.ExistsError.
func (fo *FileOps) MoveSync(source, target string) (err error) {
	start := time.Now()
	defer func() { fo.done(start, "move", err, 0) }()

	if err := common.ValidatePath(source); err != nil {
		return fmt.Errorf("invalid source path: %w", err)
	}
	if err := common.ValidatePath(target); err != nil {
		return fmt.Errorf("invalid target path: %w", err)
	}

	if !fo.moveTargetValid(source, target) {
		return common.NewExistsError(target)
	}
	return fo.rename(source, target)
}

func (fo *FileOps) rename(source, target string) error {
	parent := filepath.Dir(target)
	if !fo.probe.Exists(parent) {
		if err := fo.MakeTreeSync(parent); err != nil {
			return err
		}
	}

	if err := fo.fs.Rename(source, target); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", source, target, err)
	}
	return nil
}

// Move is the asynchronous MoveSync. Unlike MoveSync, a source that cannot be
// queried is reported instead of treated as a valid move.
func (fo *FileOps) Move(ctx context.Context, source, target string) <-chan error {
	done := common.NewCompletion[error]()

	go func() {
		start := time.Now()
		err := fo.move(ctx, source, target)
		fo.done(start, "move", err, 0)
		done.Finish(err)
	}()

	return done.Done()
}

func (fo *FileOps) move(ctx context.Context, source, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := common.ValidatePath(source); err != nil {
		return fmt.Errorf("invalid source path: %w", err)
	}
	if err := common.ValidatePath(target); err != nil {
		return fmt.Errorf("invalid target path: %w", err)
	}

	oldInfo, err := fo.fs.Stat(source)
	if err != nil {
		return fmt.Errorf("failed to access source %s: %w", source, err)
	}

	newInfo, err := fo.fs.Stat(target)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("failed to access target %s: %w", target, err)
	default:
		sameFile := stat.NewStatus(source, oldInfo).SameFile(stat.NewStatus(target, newInfo))
		if !strings.EqualFold(source, target) || !sameFile {
			return common.NewExistsError(target)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return fo.rename(source, target)
}

// RemoveSync deletes path and everything below it. A missing path is not an error.
func (fo *FileOps) RemoveSync(path string) (err error) {
	start := time.Now()
	defer func() { fo.done(start, "remove", err, 0) }()

	if err := common.ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	if err := fo.fs.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// Remove is the asynchronous RemoveSync
func (fo *FileOps) Remove(ctx context.Context, path string) <-chan error {
	done := common.NewCompletion[error]()

	go func() {
		if err := ctx.Err(); err != nil {
			done.Finish(err)
			return
		}
		done.Finish(fo.RemoveSync(path))
	}()

	return done.Done()
}

// MakeTreeSync creates dir and any missing parents. It is a no-op when dir
// is already a directory.
func (fo *FileOps) MakeTreeSync(dir string) error {
	if err := common.ValidatePath(dir); err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	if fo.probe.IsDirectory(dir) {
		return nil
	}
	if err := fo.fs.MkdirAll(dir, defaultDirPerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// MakeTree is the asynchronous MakeTreeSync
func (fo *FileOps) MakeTree(ctx context.Context, dir string) <-chan error {
	done := common.NewCompletion[error]()

	go func() {
		if err := ctx.Err(); err != nil {
			done.Finish(err)
			return
		}
		done.Finish(fo.MakeTreeSync(dir))
	}()

	return done.Done()
}

// WriteFileSync writes data to path, creating its parent directories first
func (fo *FileOps) WriteFileSync(path string, data []byte, perm os.FileMode) (err error) {
	start := time.Now()
	defer func() { fo.done(start, "write", err, int64(len(data))) }()

	if err := common.ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	if err := fo.MakeTreeSync(filepath.Dir(path)); err != nil {
		return err
	}
	if err := fo.fs.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteFile is the asynchronous WriteFileSync
func (fo *FileOps) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) <-chan error {
	done := common.NewCompletion[error]()

	go func() {
		if err := ctx.Err(); err != nil {
			done.Finish(err)
			return
		}
		done.Finish(fo.WriteFileSync(path, data, perm))
	}()

	return done.Done()
}

// MD5ForPath returns the hex MD5 digest of the file at path
func (fo *FileOps) MD5ForPath(path string) (string, error) {
	if err := common.ValidatePath(path); err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	f, err := fo.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return common.CalculateChecksum(f, "md5")
}

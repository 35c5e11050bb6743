package fileops

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/common"

	"github.com/sourcegraph/conc/pool"
)

const defaultFilePerm os.FileMode = 0o666

// errWriteAborted stops the read side after the write side has already failed
var errWriteAborted = errors.New("copy aborted by write failure")

// CopySync copies the directory source to destination recursively. The
// entries of source are read before destination is created, so destination
// may live inside source.
func (fo *FileOps) CopySync(source, destination string) error {
	if err := common.ValidatePath(source); err != nil {
		return fmt.Errorf("invalid source path: %w", err)
	}
	if err := common.ValidatePath(destination); err != nil {
		return fmt.Errorf("invalid destination path: %w", err)
	}
	return fo.copyTree(source, destination)
}

func (fo *FileOps) copyTree(source, destination string) error {
	names, err := fo.fs.ReadDirNames(source)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", source, err)
	}

	if err := fo.fs.MkdirAll(destination, defaultDirPerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", destination, err)
	}

	for _, name := range names {
		src := filepath.Join(source, name)
		dst := filepath.Join(destination, name)

		if fo.probe.IsDirectory(src) {
			err = fo.copyTree(src, dst)
		} else {
			err = fo.CopyFileSync(src, dst, 0)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CopyFileSync copies a single file in bufferSize windows at increasing
// offsets until a read returns no data. Both descriptors are closed on every
// path. A non-positive bufferSize uses the configured default.
func (fo *FileOps) CopyFileSync(source, destination string, bufferSize int) (err error) {
	start := time.Now()
	var copied int64
	defer func() { fo.done(start, "copy", err, copied) }()

	if bufferSize <= 0 {
		bufferSize = fo.opts.BufferSize
	}

	if err := fo.fs.MkdirAll(filepath.Dir(destination), defaultDirPerm); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	src, err := fo.fs.Open(source)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	dst, err := fo.fs.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, defaultFilePerm)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close destination file: %w", closeErr)
		}
	}()

	buf := make([]byte, bufferSize)
	for {
		n, readErr := src.ReadAt(buf, copied)
		if n > 0 {
			if _, err := dst.WriteAt(buf[:n], copied); err != nil {
				return fmt.Errorf("failed to write %s: %w", destination, err)
			}
			copied += int64(n)
		}
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("failed to read %s: %w", source, readErr)
		}
		if n == 0 {
			return nil
		}
	}
}

// Copy streams source into destination after creating destination's parent
// directories. The read and write sides run concurrently; the returned
// channel receives the first error from either side, or nil once the
// destination is closed. Exactly one value is delivered.
func (fo *FileOps) Copy(ctx context.Context, source, destination string) <-chan error {
	done := common.NewCompletion[error]()

	go func() {
		start := time.Now()
		copied, err := fo.stream(ctx, source, destination)
		fo.done(start, "copy", err, copied)
		done.Finish(err)
	}()

	return done.Done()
}

func (fo *FileOps) stream(ctx context.Context, source, destination string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := fo.fs.MkdirAll(filepath.Dir(destination), defaultDirPerm); err != nil {
		return 0, fmt.Errorf("failed to create destination directory: %w", err)
	}

	src, err := fo.fs.Open(source)
	if err != nil {
		return 0, fmt.Errorf("failed to open source file: %w", err)
	}
	dst, err := fo.fs.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, defaultFilePerm)
	if err != nil {
		src.Close()
		return 0, fmt.Errorf("failed to create destination file: %w", err)
	}

	pr, pw := io.Pipe()
	var copied atomic.Int64

	p := pool.New().WithErrors().WithFirstError()
	p.Go(func() error {
		defer src.Close()
		_, err := io.Copy(pw, contextReader{ctx: ctx, r: src})
		pw.CloseWithError(err)
		if errors.Is(err, errWriteAborted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", source, err)
		}
		return nil
	})
	p.Go(func() error {
		n, err := io.Copy(dst, pr)
		copied.Store(n)
		if err != nil {
			pr.CloseWithError(errWriteAborted)
		}
		closeErr := dst.Close()
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", destination, err)
		}
		if closeErr != nil {
			return fmt.Errorf("failed to close %s: %w", destination, closeErr)
		}
		return nil
	})

	err = p.Wait()
	return copied.Load(), err
}

// contextReader stops a copy once its context is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

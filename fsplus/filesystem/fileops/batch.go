package fileops

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/types"

	"github.com/sourcegraph/conc/pool"
)

const defaultBatchWorkers = 4

// BatchOps runs independent file operations with bounded concurrency.
// Operations in one batch must not depend on each other.
type BatchOps struct {
	fileOps    *FileOps
	maxWorkers int
}

// NewBatchOps creates a batch runner over fileOps
func NewBatchOps(fileOps *FileOps, maxWorkers int) *BatchOps {
	if maxWorkers <= 0 {
		maxWorkers = defaultBatchWorkers
	}
	return &BatchOps{
		fileOps:    fileOps,
		maxWorkers: maxWorkers,
	}
}

// CopyBatch copies each operation's source file to its target
func (bo *BatchOps) CopyBatch(ctx context.Context, operations []types.Operation) *types.BatchResult {
	return bo.run(ctx, "copy", len(operations), func(ctx context.Context, i int) error {
		op := operations[i]
		return <-bo.fileOps.Copy(ctx, op.Source, op.Target)
	})
}

// MoveBatch moves each operation's source to its target
func (bo *BatchOps) MoveBatch(ctx context.Context, operations []types.Operation) *types.BatchResult {
	return bo.run(ctx, "move", len(operations), func(ctx context.Context, i int) error {
		op := operations[i]
		return <-bo.fileOps.Move(ctx, op.Source, op.Target)
	})
}

// RemoveBatch removes every path recursively
func (bo *BatchOps) RemoveBatch(ctx context.Context, paths []string) *types.BatchResult {
	return bo.run(ctx, "remove", len(paths), func(ctx context.Context, i int) error {
		return <-bo.fileOps.Remove(ctx, paths[i])
	})
}

func (bo *BatchOps) run(ctx context.Context, op string, n int, fn func(context.Context, int) error) *types.BatchResult {
	start := time.Now()
	result := &types.BatchResult{}

	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(bo.maxWorkers).WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		p.Go(func(ctx context.Context) error {
			err := fn(ctx, i)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Errorf("operation %d failed: %w", i, err))
				return nil
			}
			result.Processed++
			return nil
		})
	}
	_ = p.Wait()

	result.Duration = time.Since(start)
	result.Success = result.Failed == 0

	bo.fileOps.logger.Info().
		Str("op", op).
		Int("total", n).
		Int("successful", result.Processed).
		Int("failed", result.Failed).
		Dur("duration", result.Duration).
		Msg("batch completed")

	return result
}

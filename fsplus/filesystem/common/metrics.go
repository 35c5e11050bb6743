package common

import (
	"sync"
	"time"
)

// BaseMetrics provides common fields used across different metrics types
type BaseMetrics struct {
	TotalOperations int64
	SuccessfulOps   int64
	FailedOps       int64
	LastOperation   time.Time
	Mu              sync.RWMutex
}

// UpdateBaseMetrics updates common metrics fields
func (bm *BaseMetrics) UpdateBaseMetrics(success bool) {
	bm.Mu.Lock()
	defer bm.Mu.Unlock()

	bm.TotalOperations++
	if success {
		bm.SuccessfulOps++
	} else {
		bm.FailedOps++
	}
	bm.LastOperation = time.Now()
}

// GetBaseMetrics returns the common metrics as a map
func (bm *BaseMetrics) GetBaseMetrics() map[string]interface{} {
	bm.Mu.RLock()
	defer bm.Mu.RUnlock()

	return map[string]interface{}{
		"total_operations": bm.TotalOperations,
		"successful_ops":   bm.SuccessfulOps,
		"failed_ops":       bm.FailedOps,
		"last_operation":   bm.LastOperation,
	}
}

// FileOperationMetrics tracks copy/move/remove activity
type FileOperationMetrics struct {
	BaseMetrics
	TotalBytesTransferred int64
	AverageSpeed          float64 // bytes per second
}

// UpdateMetrics records one finished operation
func (fom *FileOperationMetrics) UpdateMetrics(start time.Time, err error, bytesTransferred int64) {
	fom.UpdateBaseMetrics(err == nil)

	fom.Mu.Lock()
	defer fom.Mu.Unlock()

	if bytesTransferred > 0 {
		fom.TotalBytesTransferred += bytesTransferred
		if seconds := time.Since(start).Seconds(); seconds > 0 {
			fom.AverageSpeed = float64(bytesTransferred) / seconds
		}
	}
}

// GetMetrics returns file operation metrics as a map
func (fom *FileOperationMetrics) GetMetrics() map[string]interface{} {
	metrics := fom.GetBaseMetrics()
	fom.Mu.RLock()
	defer fom.Mu.RUnlock()

	metrics["total_bytes_transferred"] = fom.TotalBytesTransferred
	metrics["average_speed"] = fom.AverageSpeed
	return metrics
}

// TraversalMetrics tracks tree walks
type TraversalMetrics struct {
	BaseMetrics
	TotalFiles       int64
	TotalDirectories int64
	SkippedEntries   int64
	AverageTime      time.Duration
}

// Record adds the counts of one finished walk
func (tm *TraversalMetrics) Record(start time.Time, err error, files, dirs, skipped int64) {
	tm.UpdateBaseMetrics(err == nil)

	tm.Mu.Lock()
	defer tm.Mu.Unlock()

	tm.TotalFiles += files
	tm.TotalDirectories += dirs
	tm.SkippedEntries += skipped

	duration := time.Since(start)
	if tm.TotalOperations <= 1 {
		tm.AverageTime = duration
	} else {
		tm.AverageTime = (tm.AverageTime*time.Duration(tm.TotalOperations-1) + duration) / time.Duration(tm.TotalOperations)
	}
}

// GetMetrics returns traversal metrics as a map
func (tm *TraversalMetrics) GetMetrics() map[string]interface{} {
	metrics := tm.GetBaseMetrics()
	tm.Mu.RLock()
	defer tm.Mu.RUnlock()

	metrics["total_files"] = tm.TotalFiles
	metrics["total_directories"] = tm.TotalDirectories
	metrics["skipped_entries"] = tm.SkippedEntries
	metrics["average_time"] = tm.AverageTime
	return metrics
}

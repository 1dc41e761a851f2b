package rendering

import (
	"context"

	"raymode7/internal/mathutil"
	"raymode7/internal/threading/core"
)

// Batch size limits for one pool job. Columns and rows are cheap, so jobs
// carry several of them.
const (
	inlineLimit  = 8
	minBatchSize = 4
	maxBatchSize = 32
)

// ParallelRenderer spreads the per-column and per-row render loops over a
// worker pool. It satisfies the renderer's Executor interface.
type ParallelRenderer struct {
	workerPool *core.WorkerPool
	ownsPool   bool
}

// NewParallelRenderer creates a parallel renderer with one worker per CPU
func NewParallelRenderer() *ParallelRenderer {
	return &ParallelRenderer{workerPool: core.CreateDefaultWorkerPool(), ownsPool: true}
}

// NewParallelRendererWithWorkers creates a parallel renderer with n workers
// (0 = one per CPU).
func NewParallelRendererWithWorkers(n int) *ParallelRenderer {
	pool := core.NewWorkerPool(n)
	pool.Start()
	return &ParallelRenderer{workerPool: pool, ownsPool: true}
}

// NewParallelRendererWithPool shares an existing, started pool.
func NewParallelRendererWithPool(pool *core.WorkerPool) *ParallelRenderer {
	return &ParallelRenderer{workerPool: pool}
}

// ParallelFor runs fn for each index in [start, end) and returns when all
// calls are done. Very small ranges run inline to avoid synchronization overhead.
func (pr *ParallelRenderer) ParallelFor(start, end int, fn func(int)) {
	n := end - start
	if n <= 0 {
		return
	}
	if n <= inlineLimit {
		for i := start; i < end; i++ {
			fn(i)
		}
		return
	}
	pr.workerPool.ParallelChunks(context.Background(), start, end, pr.BatchSize(n), fn)
}

// BatchSize returns how many indices one job processes for a range of n.
func (pr *ParallelRenderer) BatchSize(n int) int {
	return mathutil.IntClamp(n/pr.workerPool.GetNumWorkers(), minBatchSize, maxBatchSize)
}

// Pool exposes the underlying worker pool, for metrics.
func (pr *ParallelRenderer) Pool() *core.WorkerPool {
	return pr.workerPool
}

// Stop shuts down the worker pool if the renderer created it.
func (pr *ParallelRenderer) Stop() {
	if pr.ownsPool {
		pr.workerPool.Stop()
	}
}

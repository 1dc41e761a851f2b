package core

import (
	"context"
	"runtime"
	"sync"
)

// WorkerPool manages a pool of worker goroutines for parallel processing
type WorkerPool struct {
	numWorkers int
	jobQueue   chan job
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once

	queued    SafeCounter
	completed SafeCounter
}

type job struct {
	run  func()
	done func() // called after the pool's counters are updated
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		jobQueue:   make(chan job, numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// CreateDefaultWorkerPool creates and starts a worker pool with one worker per CPU
func CreateDefaultWorkerPool() *WorkerPool {
	pool := NewWorkerPool(0)
	pool.Start()
	return pool
}

// Start initializes and starts all worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	for {
		select {
		case j := <-wp.jobQueue:
			j.run()
			wp.queued.Decrement()
			wp.completed.Increment()
			if j.done != nil {
				j.done()
			}
			wp.wg.Done()
		case <-wp.quit:
			return
		}
	}
}

// Submit adds a job to the worker queue
func (wp *WorkerPool) Submit(fn func()) {
	wp.submit(fn, nil)
}

func (wp *WorkerPool) submit(fn, done func()) {
	wp.wg.Add(1)
	wp.queued.Increment()
	wp.jobQueue <- job{run: fn, done: done}
}

// SubmitWithContext adds a job that is skipped if ctx is already cancelled
// when a worker picks it up.
func (wp *WorkerPool) SubmitWithContext(ctx context.Context, fn func()) {
	wp.Submit(func() {
		select {
		case <-ctx.Done():
		default:
			fn()
		}
	})
}

// Wait waits for all currently queued jobs to complete
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Stop shuts down the worker pool. Jobs still queued are abandoned.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() { close(wp.quit) })
}

// ParallelFor executes fn for every index in [start, end) using the pool
func (wp *WorkerPool) ParallelFor(start, end int, fn func(int)) {
	wp.ParallelForWithContext(context.Background(), start, end, fn)
}

// ParallelForWithContext executes fn for every index in [start, end), split
// into one chunk per worker. It waits only for its own chunks, so concurrent
// callers do not block on each other.
func (wp *WorkerPool) ParallelForWithContext(ctx context.Context, start, end int, fn func(int)) {
	if start >= end {
		return
	}
	chunkSize := max(1, (end-start)/wp.numWorkers)
	wp.ParallelChunks(ctx, start, end, chunkSize, fn)
}

// ParallelChunks executes fn for every index in [start, end) in chunks of
// chunkSize indices per job.
func (wp *WorkerPool) ParallelChunks(ctx context.Context, start, end, chunkSize int, fn func(int)) {
	if start >= end {
		return
	}
	chunkSize = max(1, chunkSize)

	var done sync.WaitGroup
	for i := start; i < end; i += chunkSize {
		chunkStart := i
		chunkEnd := min(i+chunkSize, end)
		done.Add(1)
		wp.submit(func() {
			for j := chunkStart; j < chunkEnd; j++ {
				select {
				case <-ctx.Done():
					return
				default:
					fn(j)
				}
			}
		}, done.Done)
	}
	done.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// QueuedJobs returns the number of submitted jobs not yet finished
func (wp *WorkerPool) QueuedJobs() int64 {
	return wp.queued.Get()
}

// CompletedJobs returns the number of jobs finished since the pool was created
func (wp *WorkerPool) CompletedJobs() int64 {
	return wp.completed.Get()
}

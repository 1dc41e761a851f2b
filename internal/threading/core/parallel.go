package core

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"raymode7/internal/mathutil"
)

// ParallelForEach executes a function in parallel for each item in a slice.
func ParallelForEach[T any](items []T, fn func(T)) {
	ParallelForEachWithContext(context.Background(), items, fn)
}

// ParallelForEachWithContext executes a function in parallel for each item in a slice
// with cancellation support via context. Goroutines check for cancellation between items.
func ParallelForEachWithContext[T any](ctx context.Context, items []T, fn func(T)) {
	if len(items) == 0 {
		return
	}

	numWorkers := mathutil.IntMin(runtime.NumCPU(), len(items))
	chunkSize := mathutil.IntMax(1, len(items)/numWorkers)
	var wg sync.WaitGroup

	for i := 0; i < len(items); i += chunkSize {
		end := mathutil.IntMin(i+chunkSize, len(items))
		chunk := items[i:end]

		wg.Add(1)
		go func(chunk []T) {
			defer wg.Done()
			for _, item := range chunk {
				select {
				case <-ctx.Done():
					return
				default:
					fn(item)
				}
			}
		}(chunk)
	}

	wg.Wait()
}

// ParallelMap executes a function in parallel for each item and collects the
// results in input order.
func ParallelMap[T any, R any](items []T, fn func(T) R) []R {
	if len(items) == 0 {
		return nil
	}

	numWorkers := mathutil.IntMin(runtime.NumCPU(), len(items))
	chunkSize := mathutil.IntMax(1, len(items)/numWorkers)

	results := make([]R, len(items))
	var wg sync.WaitGroup

	for i := 0; i < len(items); i += chunkSize {
		start := i
		end := mathutil.IntMin(i+chunkSize, len(items))

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for j := start; j < end; j++ {
				results[j] = fn(items[j])
			}
		}(start, end)
	}

	wg.Wait()
	return results
}

// SafeCounter provides thread-safe counter operations using lock-free atomics.
type SafeCounter struct {
	value atomic.Int64
}

// NewSafeCounter creates a new thread-safe counter initialized to zero
func NewSafeCounter() *SafeCounter {
	return &SafeCounter{}
}

// Increment atomically increments the counter and returns the new value
func (c *SafeCounter) Increment() int64 {
	return c.value.Add(1)
}

// Decrement atomically decrements the counter and returns the new value
func (c *SafeCounter) Decrement() int64 {
	return c.value.Add(-1)
}

// Add atomically adds delta to the counter and returns the new value
func (c *SafeCounter) Add(delta int64) int64 {
	return c.value.Add(delta)
}

// Get atomically gets the counter value
func (c *SafeCounter) Get() int64 {
	return c.value.Load()
}

// Set atomically sets the counter value
func (c *SafeCounter) Set(value int64) {
	c.value.Store(value)
}

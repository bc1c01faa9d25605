// Package parallel splits index ranges across CPU cores.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Parallelize divides [0, items) into one contiguous chunk per CPU core and
// calls fn on each chunk concurrently. It returns the first error; the context
// handed to fn is cancelled as soon as any chunk fails.
func Parallelize(ctx context.Context, items int, fn func(ctx context.Context, start, end int) error) error {
	if items <= 0 {
		return nil
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}
	chunkSize := (items + numWorkers - 1) / numWorkers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < items; start += chunkSize {
		end := min(start+chunkSize, items)
		g.Go(func() error {
			return fn(ctx, start, end)
		})
	}
	return g.Wait()
}

// ParallelizeWithThreshold runs fn once over the whole range when items is at
// most threshold, and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(ctx context.Context, items, threshold int, fn func(ctx context.Context, start, end int) error) error {
	if items <= threshold {
		if items <= 0 {
			return nil
		}
		return fn(ctx, 0, items)
	}
	return Parallelize(ctx, items, fn)
}

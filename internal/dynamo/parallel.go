package dynamo

import (
	"context"
	"runtime"
	"sync"
)

// ParallelFor splits [0, n) into contiguous chunks of at least minChunk
// indices and runs fn on each chunk in its own goroutine. It returns once
// every chunk is done.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	if minChunk < 1 {
		minChunk = 1
	}
	workers := min(runtime.GOMAXPROCS(0), n/minChunk)
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		lo := lo
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(lo, hi)
		}()
	}
	wg.Wait()
}

// RunAll calls fn for every index in [0, n) across ParallelFor chunks.
// Indices not yet started when ctx is cancelled are skipped. The error of the
// lowest failing index is returned.
func RunAll(ctx context.Context, n, minChunk int, fn func(i int) error) error {
	errs := make([]error, n)
	ParallelFor(n, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				continue
			}
			errs[i] = fn(i)
		}
	})

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

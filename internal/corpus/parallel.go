package corpus

import (
	"context"
	"sync"
)

// runOrdered applies fn to every item with at most concurrency calls in flight
// and returns the results in input order. Items not started before ctx is done
// are passed to fn anyway so it can record the cancellation.
func runOrdered[T, R any](ctx context.Context, items []T, concurrency int, fn func(context.Context, T) R) []R {
	if len(items) == 0 {
		return nil
	}
	concurrency = max(1, min(concurrency, len(items)))

	sem := make(chan struct{}, concurrency)
	results := make([]R, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = fn(ctx, item)
		}()
	}
	wg.Wait()
	return results
}

package usecase

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/kirillkom/docs-context-mcp/internal/core/domain"
)

// DefaultConcurrency bounds how many per-file oracle round trips may be
// in flight at once.
const DefaultConcurrency = 4

// Scheduler fans per-file work out to goroutines under a fixed ceiling
// while keeping results index-addressed. Output order always matches
// input order; completion order never leaks into the result slice.
type Scheduler struct {
	limit int64
}

func NewScheduler(limit int) *Scheduler {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	return &Scheduler{limit: int64(limit)}
}

// Run executes unit(i) for i in [0, n) with at most the configured
// number of units in flight, and returns results in input order. Units
// do not fail: every fallible step inside them resolves to a fallback
// value at its own boundary, so a slow or broken file never aborts its
// siblings. If ctx is cancelled before all units start, the unstarted
// slots keep their zero values.
func (s *Scheduler) Run(ctx context.Context, n int, unit func(ctx context.Context, i int) domain.RelevantContent) []domain.RelevantContent {
	results := make([]domain.RelevantContent, n)
	if n == 0 || unit == nil {
		return results
	}

	sem := semaphore.NewWeighted(s.limit)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		// Acquire can succeed without blocking even on a done context,
		// so cancellation is checked explicitly before each dispatch.
		if ctx.Err() != nil {
			break
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = unit(ctx, i)
		}(i)
	}
	wg.Wait()
	return results
}

package service

import (
	"context"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"github.com/mmcdole/reel/internal/domain"
)

// newAbortPool returns a bounded pool that cancels its context on the first
// task error and reports that error from Wait
func newAbortPool(ctx context.Context, concurrency int) *pool.ContextPool {
	return pool.New().
		WithMaxGoroutines(concurrency).
		WithErrors().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()
}

// fetchRemainingPages fetches pages 2..totalPages concurrently and returns
// them in page order
func fetchRemainingPages[T any](
	ctx context.Context,
	totalPages int,
	concurrency int,
	fetch func(ctx context.Context, page int) (*domain.Page[T], error),
) ([]*domain.Page[T], error) {
	if totalPages <= 1 {
		return nil, nil
	}

	pages := make([]*domain.Page[T], totalPages-1)
	p := newAbortPool(ctx, concurrency)
	for n := 2; n <= totalPages; n++ {
		p.Go(func(ctx context.Context) error {
			page, err := fetch(ctx, n)
			if err != nil {
				return err
			}
			pages[n-2] = page
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

// removeAll issues remove for every id concurrently. The first failure
// cancels removals that have not started yet; ones already done stay done.
// It returns the acknowledgements (nil where skipped or failed) and how many
// removals succeeded.
func removeAll(
	ctx context.Context,
	ids []int,
	concurrency int,
	remove func(ctx context.Context, id int) (*domain.StatusResponse, error),
) ([]*domain.StatusResponse, int, error) {
	results := make([]*domain.StatusResponse, len(ids))
	var succeeded atomic.Int64

	p := newAbortPool(ctx, concurrency)
	for i, id := range ids {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			resp, err := remove(ctx, id)
			if err != nil {
				return err
			}
			results[i] = resp
			succeeded.Add(1)
			return nil
		})
	}

	err := p.Wait()
	return results, int(succeeded.Load()), err
}

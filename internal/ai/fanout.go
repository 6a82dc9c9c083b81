package ai

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task is one unit of a fan-out.
type Task[T any] func(ctx context.Context) (T, error)

// FanOut runs every task concurrently and joins them. The first failure
// cancels the shared context and is returned; in that case no results are
// returned at all, so callers never see a partial set.
func FanOut[T any](ctx context.Context, tasks ...Task[T]) ([]T, error) {
	g, gctx := errgroup.WithContext(ctx)
	results := make([]T, len(tasks))

	for i, task := range tasks {
		g.Go(func() error {
			v, err := task(gctx)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

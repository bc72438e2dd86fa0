// Package workerpool runs a bounded set of workers over a slice of items.
package workerpool

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Process fans items out to at most workerCount concurrent invocations of
// process. The first error cancels the remaining work and is returned;
// onCancel, when set, runs once before the cancellation propagates.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onCancel func(),
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount)

	var cancelOnce sync.Once
	for _, item := range items {
		item := item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := process(ctx, item); err != nil {
				if onCancel != nil {
					cancelOnce.Do(onCancel)
				}
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

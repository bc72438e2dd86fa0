// Package batcher accumulates items and flushes them in groups, bounded by
// batch size, age and a flush-rate limit.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// FlushFunc receives each accumulated batch. The slice is reused between
// flushes; implementations must not retain it.
type FlushFunc[T any] func(context.Context, []T) error

// Batcher buffers items and flushes them when the buffer fills or the
// flush interval elapses, whichever comes first.
type Batcher[T any] struct {
	logger   *zap.Logger
	flush    FlushFunc[T]
	capacity int
	interval time.Duration
	limiter  ratelimit.Limiter

	in   chan T
	done chan struct{}
	wg   sync.WaitGroup
}

// New constructs a Batcher flushing through flush. rps caps how many
// flushes may run per second.
func New[T any](logger *zap.Logger, flush FlushFunc[T], capacity int, interval time.Duration, rps int) *Batcher[T] {
	return &Batcher[T]{
		logger:   logger,
		flush:    flush,
		capacity: capacity,
		interval: interval,
		limiter:  ratelimit.New(rps),
		in:       make(chan T, capacity*2),
		done:     make(chan struct{}),
	}
}

// Start launches the background flush loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.loop(ctx)
	}()
}

// Stop flushes whatever is buffered and waits for the loop to exit.
func (b *Batcher[T]) Stop() {
	close(b.done)
	b.wg.Wait()
}

// Add queues an item, blocking while the buffer is full. It fails once the
// batcher is stopped or the context is canceled.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.done:
		return context.Canceled
	default:
	}

	select {
	case b.in <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Batcher[T]) loop(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	pending := make([]T, 0, b.capacity)

	emit := func() {
		if len(pending) == 0 {
			return
		}

		b.limiter.Take()
		if err := b.flush(ctx, pending); err != nil {
			b.logger.Error("batch not flushed", zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(pending)))
		}
		pending = pending[:0]
	}

	for {
		select {
		case item := <-b.in:
			pending = append(pending, item)
			if len(pending) >= b.capacity {
				emit()
			}

		case <-ticker.C:
			emit()

		case <-ctx.Done():
			emit()
			return

		case <-b.done:
			// Drain what Add already queued before the final flush.
			for {
				select {
				case item := <-b.in:
					pending = append(pending, item)
					if len(pending) >= b.capacity {
						emit()
					}
				default:
					emit()
					return
				}
			}
		}
	}
}

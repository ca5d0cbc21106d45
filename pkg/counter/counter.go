// Package counter provides a monotonic counter that is safe to share
// between goroutines.
package counter

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Counter is a monotonic uint64 counter. The zero value is ready to use.
// Counters must not be copied after first use.
type Counter struct {
	n atomic.Uint64
}

// Increment adds one and returns the new value.
func (c *Counter) Increment() uint64 {
	return c.n.Add(1)
}

// Add adds delta and returns the new value.
func (c *Counter) Add(delta uint64) uint64 {
	return c.n.Add(delta)
}

// Value returns the current count.
func (c *Counter) Value() uint64 {
	return c.n.Load()
}

// Reset sets the count back to zero and returns the previous value.
func (c *Counter) Reset() uint64 {
	return c.n.Swap(0)
}

// IncrementParallel increments c perWorker times from each of workers
// goroutines. It stops early when ctx is cancelled and returns ctx.Err().
func IncrementParallel(ctx context.Context, c *Counter, workers, perWorker int) error {
	if workers <= 0 || perWorker < 0 {
		return fmt.Errorf("invalid stress shape: workers=%d perWorker=%d", workers, perWorker)
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < perWorker; i++ {
				if i%1024 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				c.Increment()
			}
			return nil
		})
	}
	return g.Wait()
}

// Package workerpool provides bounded fan-out over a list of work items.
package workerpool

import (
	"context"
	"errors"
	"sync"
)

// ErrStop may be returned by a process func to end the pool early without reporting a
// failure: remaining items are skipped and Process returns nil.
var ErrStop = errors.New("workerpool: stop")

// Process runs process for every item on workerCount goroutines. The first error
// cancels the shared context and is returned; onCancel, when set, runs once on that path.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onCancel func(),
) error {
	if workerCount < 1 {
		workerCount = 1
	}
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once     sync.Once
		firstErr error
		stopped  bool
	)
	fail := func(err error) {
		once.Do(func() {
			if errors.Is(err, ErrStop) {
				stopped = true
			} else {
				firstErr = err
				if onCancel != nil {
					onCancel()
				}
			}
			cancel()
		})
	}

	tasks := make(chan T)
	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				if ctx.Err() != nil {
					continue
				}
				if err := process(ctx, item); err != nil {
					fail(err)
				}
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case <-ctx.Done():
			break feed
		case tasks <- item:
		}
	}
	close(tasks)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	if stopped {
		return nil
	}
	return parent.Err()
}

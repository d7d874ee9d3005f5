// Package executor runs a collection of independent remote operations with
// a hard ceiling on how many are in flight at once. Per-item failures are
// captured in place; the executor itself never aborts a run.
package executor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/brieflab/briefkit/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Strategy selects how the concurrency window is maintained.
type Strategy string

const (
	// StrategyBatch partitions the input into chunks of MaxConcurrency,
	// waits for every operation in a chunk to settle, then pauses
	// DelayBetweenBatches before the next chunk.
	StrategyBatch Strategy = "batch"

	// StrategyWindow tops the window back up to MaxConcurrency as soon as
	// any slot frees. Better wall-clock throughput when operation
	// durations vary widely.
	StrategyWindow Strategy = "window"
)

// Result is the terminal state of one operation, keyed by input index:
// exactly one of Value or Err is meaningful.
type Result[T any] struct {
	Value T
	Err   error
}

// Operation computes the result for one input item. The index is the
// item's position in the original collection.
type Operation[I, O any] func(ctx context.Context, item I, index int) (O, error)

// Options configures one Map run.
type Options struct {
	// MaxConcurrency is the ceiling on in-flight operations. Values < 1
	// are treated as 1.
	MaxConcurrency int

	// Strategy defaults to StrategyBatch.
	Strategy Strategy

	// DelayBetweenBatches is the pause between chunks under StrategyBatch.
	// No delay is applied after the final chunk.
	DelayBetweenBatches time.Duration

	// Progress, when non-nil, is invoked synchronously after every
	// individual operation settles.
	Progress ports.ProgressObserver
}

// Map runs op over every item and returns one Result per input index.
// results[i] always corresponds to items[i] regardless of completion
// order, and len(results) == len(items) even under cancellation. A failing
// or panicking operation is recorded at its own index and never disturbs
// its siblings.
func Map[I, O any](ctx context.Context, items []I, op Operation[I, O], opts Options) []Result[O] {
	if len(items) == 0 {
		return []Result[O]{}
	}
	if opts.MaxConcurrency < 1 {
		opts.MaxConcurrency = 1
	}

	prog := &progressCounter{total: len(items), obs: opts.Progress}

	if opts.Strategy == StrategyWindow {
		return mapWindow(ctx, items, op, opts, prog)
	}
	return mapBatch(ctx, items, op, opts, prog)
}

func mapBatch[I, O any](
	ctx context.Context,
	items []I,
	op Operation[I, O],
	opts Options,
	prog *progressCounter,
) []Result[O] {
	results := make([]Result[O], len(items))

	for start := 0; start < len(items); start += opts.MaxConcurrency {
		if err := ctx.Err(); err != nil {
			markRemaining(results, start, err)
			return results
		}

		end := min(start+opts.MaxConcurrency, len(items))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := runOne(ctx, op, items[i], i)
				results[i] = Result[O]{Value: v, Err: err}
				prog.settled()
			}()
		}
		wg.Wait()

		if end < len(items) && opts.DelayBetweenBatches > 0 {
			if err := sleep(ctx, opts.DelayBetweenBatches); err != nil {
				markRemaining(results, end, err)
				return results
			}
		}
	}

	return results
}

func mapWindow[I, O any](
	ctx context.Context,
	items []I,
	op Operation[I, O],
	opts Options,
	prog *progressCounter,
) []Result[O] {
	results := make([]Result[O], len(items))

	g := &errgroup.Group{}
	g.SetLimit(opts.MaxConcurrency)

	for i := range items {
		if err := ctx.Err(); err != nil {
			results[i] = Result[O]{Err: err}
			continue
		}

		g.Go(func() error {
			v, err := runOne(ctx, op, items[i], i)
			results[i] = Result[O]{Value: v, Err: err}
			prog.settled()
			// Errors stay in the result slot; returning them here would
			// let the group cancel siblings.
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// runOne invokes op, converting a panic into an error at this index so a
// synchronously failing operation behaves the same as a rejecting one.
func runOne[I, O any](ctx context.Context, op Operation[I, O], item I, index int) (out O, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = zerr.With(zerr.New("operation panicked"), "panic", fmt.Sprint(r))
		}
	}()
	return op(ctx, item, index)
}

func markRemaining[O any](results []Result[O], from int, err error) {
	for i := from; i < len(results); i++ {
		results[i] = Result[O]{Err: err}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// progressCounter serializes observer callbacks so completed counts are
// monotonic even though tasks settle concurrently.
type progressCounter struct {
	mu    sync.Mutex
	done  int
	total int
	obs   ports.ProgressObserver
}

func (p *progressCounter) settled() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	if p.obs != nil {
		p.obs.OnProgress(p.done, p.total)
	}
}

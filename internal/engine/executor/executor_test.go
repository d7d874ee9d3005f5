package executor_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/brieflab/briefkit/internal/core/ports"
	"github.com/brieflab/briefkit/internal/engine/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gauge tracks the number of concurrently running operations and the
// high-water mark.
type gauge struct {
	mu      sync.Mutex
	current int
	peak    int
}

func (g *gauge) enter() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current++
	if g.current > g.peak {
		g.peak = g.current
	}
}

func (g *gauge) leave() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current--
}

func (g *gauge) max() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.peak
}

func TestMap_EmptyInput(t *testing.T) {
	results := executor.Map(context.Background(), []int{},
		func(_ context.Context, item, _ int) (int, error) { return item, nil },
		executor.Options{MaxConcurrency: 4},
	)

	require.NotNil(t, results)
	assert.Empty(t, results)
}

func TestMap_ResultsMatchInputOrder(t *testing.T) {
	for _, strategy := range []executor.Strategy{executor.StrategyBatch, executor.StrategyWindow} {
		t.Run(string(strategy), func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				items := []int{10, 20, 30, 40, 50, 60, 70}

				results := executor.Map(context.Background(), items,
					func(_ context.Context, item, index int) (int, error) {
						// Later items finish earlier, so completion order
						// inverts input order.
						time.Sleep(time.Duration(len(items)-index) * 10 * time.Millisecond)
						return item * 2, nil
					},
					executor.Options{MaxConcurrency: 3, Strategy: strategy},
				)

				require.Len(t, results, len(items))
				for i, item := range items {
					require.NoError(t, results[i].Err)
					assert.Equal(t, item*2, results[i].Value)
				}
			})
		})
	}
}

func TestMap_ConcurrencyCeiling(t *testing.T) {
	for _, strategy := range []executor.Strategy{executor.StrategyBatch, executor.StrategyWindow} {
		t.Run(string(strategy), func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				var g gauge
				items := make([]int, 20)

				executor.Map(context.Background(), items,
					func(_ context.Context, _, _ int) (struct{}, error) {
						g.enter()
						defer g.leave()
						time.Sleep(5 * time.Millisecond)
						return struct{}{}, nil
					},
					executor.Options{MaxConcurrency: 4, Strategy: strategy},
				)

				assert.LessOrEqual(t, g.max(), 4)
				assert.Equal(t, 4, g.max(), "the window should be saturated")
			})
		})
	}
}

func TestMap_FailureIsolation(t *testing.T) {
	errBoom := errors.New("boom")

	results := executor.Map(context.Background(), []int{0, 1, 2, 3},
		func(_ context.Context, item, _ int) (int, error) {
			if item == 2 {
				return 0, errBoom
			}
			return item, nil
		},
		executor.Options{MaxConcurrency: 2, Strategy: executor.StrategyWindow},
	)

	require.Len(t, results, 4)
	assert.ErrorIs(t, results[2].Err, errBoom)
	for _, i := range []int{0, 1, 3} {
		assert.NoError(t, results[i].Err)
		assert.Equal(t, i, results[i].Value)
	}
}

func TestMap_PanicCapturedAtIndex(t *testing.T) {
	results := executor.Map(context.Background(), []int{0, 1, 2},
		func(_ context.Context, item, _ int) (int, error) {
			if item == 1 {
				panic("unexpected state")
			}
			return item, nil
		},
		executor.Options{MaxConcurrency: 3},
	)

	require.Len(t, results, 3)
	require.Error(t, results[1].Err)
	assert.Contains(t, results[1].Err.Error(), "operation panicked")
	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[2].Err)
}

func TestMapBatch_DelayBetweenWavesOnly(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		start := time.Now()

		// 5 items at concurrency 2 make waves of 2, 2, 1. Each wave takes
		// 10ms, and the 50ms pause applies between waves but not after the
		// last one: 3*10ms + 2*50ms.
		results := executor.Map(context.Background(), []int{0, 1, 2, 3, 4},
			func(_ context.Context, item, _ int) (int, error) {
				time.Sleep(10 * time.Millisecond)
				return item, nil
			},
			executor.Options{
				MaxConcurrency:      2,
				Strategy:            executor.StrategyBatch,
				DelayBetweenBatches: 50 * time.Millisecond,
			},
		)

		elapsed := time.Since(start)
		assert.Equal(t, 130*time.Millisecond, elapsed)

		for i, r := range results {
			require.NoError(t, r.Err)
			assert.Equal(t, i, r.Value)
		}
	})
}

func TestMapWindow_RefillsFreedSlots(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		start := time.Now()

		durations := []time.Duration{
			100 * time.Millisecond,
			10 * time.Millisecond,
			10 * time.Millisecond,
			10 * time.Millisecond,
		}

		// At limit 2 the short items funnel through the second slot while
		// the first is held by the slow item, so the run takes exactly as
		// long as the slowest item.
		executor.Map(context.Background(), durations,
			func(_ context.Context, d time.Duration, _ int) (struct{}, error) {
				time.Sleep(d)
				return struct{}{}, nil
			},
			executor.Options{MaxConcurrency: 2, Strategy: executor.StrategyWindow},
		)

		assert.Equal(t, 100*time.Millisecond, time.Since(start))
	})
}

func TestMap_ProgressIsMonotonic(t *testing.T) {
	for _, strategy := range []executor.Strategy{executor.StrategyBatch, executor.StrategyWindow} {
		t.Run(string(strategy), func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				var mu sync.Mutex
				var completed []int
				totals := map[int]bool{}

				executor.Map(context.Background(), make([]int, 7),
					func(_ context.Context, _, index int) (int, error) {
						time.Sleep(time.Duration(index%3) * time.Millisecond)
						return 0, nil
					},
					executor.Options{
						MaxConcurrency: 3,
						Strategy:       strategy,
						Progress: ports.ProgressFunc(func(done, total int) {
							mu.Lock()
							defer mu.Unlock()
							completed = append(completed, done)
							totals[total] = true
						}),
					},
				)

				require.Len(t, completed, 7)
				for i, c := range completed {
					assert.Equal(t, i+1, c)
				}
				assert.Equal(t, map[int]bool{7: true}, totals)
			})
		})
	}
}

func TestMap_CancellationMarksRemaining(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		results := executor.Map(ctx, []int{0, 1, 2, 3, 4, 5},
			func(_ context.Context, item, _ int) (int, error) {
				if item == 1 {
					cancel()
				}
				time.Sleep(time.Millisecond)
				return item, nil
			},
			executor.Options{MaxConcurrency: 2, Strategy: executor.StrategyBatch},
		)

		require.Len(t, results, 6)

		// The first wave settles; everything after the cancellation is
		// marked with the context error instead of silently vanishing.
		var cancelled int
		for _, r := range results {
			if errors.Is(r.Err, context.Canceled) {
				cancelled++
			}
		}
		assert.Equal(t, 4, cancelled)
	})
}

func TestTally(t *testing.T) {
	results := []executor.Result[string]{
		{Value: "a"},
		{Err: errors.New("x")},
		{Value: "c"},
		{Err: errors.New("y")},
	}

	stats, err := executor.Tally(results)
	assert.Equal(t, executor.Stats{Succeeded: 2, Failed: 2, Total: 4}, stats)
	require.Error(t, err)
	assert.Equal(t, "2 of 4 succeeded", stats.String())

	assert.Equal(t, []string{"a", "c"}, executor.Successes(results))
}

func TestTally_AllSucceeded(t *testing.T) {
	results := []executor.Result[int]{{Value: 1}, {Value: 2}}

	stats, err := executor.Tally(results)
	assert.NoError(t, err)
	assert.Equal(t, executor.Stats{Succeeded: 2, Total: 2}, stats)
}

func ExampleMap() {
	results := executor.Map(context.Background(), []string{"a", "b"},
		func(_ context.Context, item string, _ int) (string, error) {
			return item + "!", nil
		},
		executor.Options{MaxConcurrency: 2},
	)

	for _, r := range results {
		fmt.Println(r.Value)
	}
	// Output:
	// a!
	// b!
}

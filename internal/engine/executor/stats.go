package executor

import (
	"errors"
	"fmt"
)

// Stats summarizes a settled run for "N of M succeeded" reporting.
type Stats struct {
	Succeeded int
	Failed    int
	Total     int
}

// String renders the stat line reported for a stage.
func (s Stats) String() string {
	return fmt.Sprintf("%d of %d succeeded", s.Succeeded, s.Total)
}

// Tally counts successes and failures and joins the per-index errors.
// The joined error is nil when every operation succeeded.
func Tally[T any](results []Result[T]) (Stats, error) {
	stats := Stats{Total: len(results)}

	var errs error
	for _, r := range results {
		if r.Err != nil {
			stats.Failed++
			errs = errors.Join(errs, r.Err)
			continue
		}
		stats.Succeeded++
	}

	return stats, errs
}

// Successes returns the values of the succeeded results in input order.
func Successes[T any](results []Result[T]) []T {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Value)
		}
	}
	return out
}

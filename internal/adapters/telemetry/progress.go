package telemetry

import (
	"fmt"

	"github.com/brieflab/briefkit/internal/core/ports"
)

// SpanProgress adapts a span into a ProgressObserver: each settle is
// reflected as a progress attribute on the span.
func SpanProgress(span ports.Span) ports.ProgressObserver {
	return ports.ProgressFunc(func(completed, total int) {
		span.SetAttribute("progress", fmt.Sprintf("%d/%d", completed, total))
	})
}

// LogProgress adapts a logger into a ProgressObserver, reporting only the
// final settle to keep output quiet.
func LogProgress(logger ports.Logger, label string) ports.ProgressObserver {
	return ports.ProgressFunc(func(completed, total int) {
		if completed == total {
			logger.Info(fmt.Sprintf("%s: %d of %d settled", label, completed, total))
		}
	})
}

package ports

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans around pipeline stages and
// remote-call batches.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string) (context.Context, Span)
	// EmitPlan signals the ordered list of stages planned for a run.
	EmitPlan(ctx context.Context, stageNames []string)
}

// Span represents one unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// ProgressObserver receives completion updates for a batch of operations.
// OnProgress is invoked synchronously after each individual task settles.
type ProgressObserver interface {
	OnProgress(completed, total int)
}

// ProgressFunc adapts a plain function to ProgressObserver.
type ProgressFunc func(completed, total int)

// OnProgress calls f.
func (f ProgressFunc) OnProgress(completed, total int) {
	f(completed, total)
}

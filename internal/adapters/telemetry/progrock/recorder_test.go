package progrock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
)

func TestRecorder_SpanLifecycle(t *testing.T) {
	rec := NewRecorder(progrock.NewTape())

	ctx, span := rec.Start(t.Context(), "Fetch tracker issues")
	require.NotNil(t, ctx)
	require.NotNil(t, span)

	span.SetAttribute("progress", "1/1")
	span.End()

	assert.NoError(t, rec.Close())
}

func TestRecorder_SpanRecordsError(t *testing.T) {
	rec := NewRecorder(progrock.NewTape())

	_, span := rec.Start(t.Context(), "Summarize activity")
	span.RecordError(errors.New("completion request failed"))
	span.End()

	assert.NoError(t, rec.Close())
}

func TestRecorder_EmitPlan(t *testing.T) {
	rec := NewRecorder(progrock.NewTape())

	rec.EmitPlan(t.Context(), []string{"Fetch tracker issues", "Render standup report"})

	assert.NoError(t, rec.Close())
}

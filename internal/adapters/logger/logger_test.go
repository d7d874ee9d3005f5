package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/brieflab/briefkit/internal/adapters/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Info("job completed: standup")

	assert.Contains(t, buf.String(), "job completed: standup")
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Warn("some summaries failed")

	assert.Contains(t, buf.String(), "some summaries failed")
}

func TestLogger_ErrorNil(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_ErrorUnwindsChain(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	inner := errors.New("connection refused")
	err := zerr.Wrap(zerr.Wrap(inner, "ticket tracker request failed"), "stage failed")

	l.Error(err)

	out := buf.String()
	assert.Contains(t, out, "Error: stage failed")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "→ ticket tracker request failed")
	assert.Contains(t, out, "connection refused")
}

func TestLogger_JSONMode(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)
	l.SetJSON(true)

	l.Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "INFO", record["level"])
}

func TestLogger_JSONModeError(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)
	l.SetJSON(true)

	l.Error(errors.New("boom"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "operation failed", record["msg"])
	assert.Contains(t, record, "error")
}

package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_MissingCredential(t *testing.T) {
	t.Setenv("TEST_COMPLETION_TOKEN", "")

	_, err := NewClient(domain.CompletionConfig{
		BaseURL:  "https://ai.example.com",
		Model:    "summarizer",
		TokenEnv: "TEST_COMPLETION_TOKEN",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/completions", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req domain.CompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "summarizer", req.Model)
		assert.Equal(t, "Summarize APP-1", req.Prompt)

		_, _ = w.Write([]byte(`{"completion": "APP-1 is nearly done."}`))
	}))
	defer server.Close()

	client := newClientWithHTTP(server.URL, "tok", server.Client())

	text, err := client.Complete(context.Background(), domain.CompletionRequest{
		Model:  "summarizer",
		Prompt: "Summarize APP-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "APP-1 is nearly done.", text)
}

func TestComplete_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newClientWithHTTP(server.URL, "tok", server.Client())

	_, err := client.Complete(context.Background(), domain.CompletionRequest{Model: "m", Prompt: "p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCompletionRequestFailed)
}

func TestComplete_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer server.Close()

	client := newClientWithHTTP(server.URL, "tok", server.Client())

	_, err := client.Complete(context.Background(), domain.CompletionRequest{Model: "m", Prompt: "p"})
	require.Error(t, err)
	// String check for robustness, zerr wrapping does not carry the sentinel.
	assert.Contains(t, err.Error(), "failed to parse completion response")
}

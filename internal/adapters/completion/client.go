// Package completion implements the Completer port against the AI
// completion service's HTTP API.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/brieflab/briefkit/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// Completions routinely take longer than ordinary reads.
	httpClientTimeout = 120 * time.Second
	defaultTokenEnv   = "BRIEFKIT_COMPLETION_TOKEN"
)

var _ ports.Completer = (*Client)(nil)

// Client calls the AI completion service.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a completion client from configuration. A missing
// credential is a precondition failure raised before any remote call.
func NewClient(cfg domain.CompletionConfig) (*Client, error) {
	tokenEnv := cfg.TokenEnv
	if tokenEnv == "" {
		tokenEnv = defaultTokenEnv
	}

	token, ok := os.LookupEnv(tokenEnv)
	if !ok || token == "" {
		return nil, zerr.With(errors.Join(domain.ErrMissingCredential), "env", tokenEnv)
	}

	return &Client{
		baseURL: cfg.BaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: httpClientTimeout,
		},
	}, nil
}

// newClientWithHTTP creates a Client with a custom http client (used for testing).
func newClientWithHTTP(baseURL, token string, client *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: client,
	}
}

type completionResponse struct {
	Completion string `json:"completion"`
}

// Complete sends the request and returns the generated text.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrCompletionRequestFailed.Error())
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/v1/completions", bytes.NewReader(payload),
	)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrCompletionRequestFailed.Error())
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrCompletionRequestFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		reqErr := zerr.With(errors.Join(domain.ErrCompletionRequestFailed), "status_code", resp.StatusCode)
		return "", zerr.With(reqErr, "model", req.Model)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrCompletionRequestFailed.Error())
	}

	var out completionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", zerr.Wrap(err, domain.ErrCompletionParseFailed.Error())
	}

	return out.Completion, nil
}

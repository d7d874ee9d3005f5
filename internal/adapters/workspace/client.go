// Package workspace implements the Workspace port: read-only access to
// mail, calendar, and chat through one HTTP gateway.
package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/brieflab/briefkit/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	httpClientTimeout = 30 * time.Second
	defaultTokenEnv   = "BRIEFKIT_WORKSPACE_TOKEN"
)

var _ ports.Workspace = (*Client)(nil)

// Client reads mail, calendar events, and chat mentions.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a workspace client from configuration. A missing
// credential is a precondition failure raised before any remote call.
func NewClient(cfg domain.WorkspaceConfig) (*Client, error) {
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

// UnreadMail returns unread messages received since the given instant.
func (c *Client) UnreadMail(ctx context.Context, since time.Time) ([]domain.Message, error) {
	var out []domain.Message
	err := c.getJSON(ctx, "/mail/unread?since="+url.QueryEscape(since.Format(time.RFC3339)), &out)
	return out, err
}

// Events returns calendar entries for the given day.
func (c *Client) Events(ctx context.Context, day time.Time) ([]domain.Event, error) {
	var out []domain.Event
	err := c.getJSON(ctx, "/calendar/events?day="+day.Format("2006-01-02"), &out)
	return out, err
}

// Mentions returns chat mentions since the given instant.
func (c *Client) Mentions(ctx context.Context, since time.Time) ([]domain.Message, error) {
	var out []domain.Message
	err := c.getJSON(ctx, "/chat/mentions?since="+url.QueryEscape(since.Format(time.RFC3339)), &out)
	return out, err
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return zerr.Wrap(err, domain.ErrWorkspaceRequestFailed.Error())
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zerr.Wrap(err, domain.ErrWorkspaceRequestFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return zerr.With(errors.Join(domain.ErrWorkspaceRequestFailed), "status_code", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return zerr.Wrap(err, domain.ErrWorkspaceParseFailed.Error())
	}

	return nil
}

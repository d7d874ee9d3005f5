// Package tracker implements the TicketTracker port against the tracker's
// HTTP read API.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
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
	defaultTokenEnv   = "BRIEFKIT_TRACKER_TOKEN"
)

var _ ports.TicketTracker = (*Client)(nil)

// Client reads issues from the ticket tracker.
type Client struct {
	baseURL    string
	project    string
	token      string
	httpClient *http.Client
}

// NewClient creates a tracker client from configuration. A missing
// credential is a precondition failure raised here, before any remote
// call is attempted.
func NewClient(cfg domain.TrackerConfig) (*Client, error) {
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
		project: cfg.Project,
		token:   token,
		httpClient: &http.Client{
			Timeout: httpClientTimeout,
		},
	}, nil
}

// newClientWithHTTP creates a Client with a custom http client (used for testing).
func newClientWithHTTP(cfg domain.TrackerConfig, token string, client *http.Client) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		project:    cfg.Project,
		token:      token,
		httpClient: client,
	}
}

type issueDTO struct {
	Key      string    `json:"key"`
	Summary  string    `json:"summary"`
	Status   string    `json:"status"`
	Assignee string    `json:"assignee"`
	Updated  time.Time `json:"updated"`
}

type searchResponse struct {
	Issues []issueDTO `json:"issues"`
}

// Search returns issues matching the query, at most limit of them.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.Issue, error) {
	endpoint := fmt.Sprintf("%s/api/issues?project=%s&query=%s&limit=%d",
		c.baseURL, url.QueryEscape(c.project), url.QueryEscape(query), limit)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, zerr.Wrap(err, domain.ErrTrackerParseFailed.Error())
	}

	issues := make([]domain.Issue, len(resp.Issues))
	for i, dto := range resp.Issues {
		issues[i] = issueFromDTO(dto)
	}
	return issues, nil
}

// Issue fetches a single issue by key.
func (c *Client) Issue(ctx context.Context, key string) (*domain.Issue, error) {
	endpoint := c.baseURL + "/api/issues/" + url.PathEscape(key)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, zerr.With(errors.Join(err), "issue", key)
	}

	var dto issueDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTrackerParseFailed.Error()), "issue", key)
	}

	issue := issueFromDTO(dto)
	return &issue, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrTrackerRequestFailed.Error())
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrTrackerRequestFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrIssueNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(errors.Join(domain.ErrTrackerRequestFailed), "status_code", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrTrackerRequestFailed.Error())
	}

	return body, nil
}

func issueFromDTO(dto issueDTO) domain.Issue {
	return domain.Issue{
		Key:      dto.Key,
		Summary:  dto.Summary,
		Status:   dto.Status,
		Assignee: dto.Assignee,
		Updated:  dto.Updated,
	}
}

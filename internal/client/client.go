// Package client is the indexctl HTTP client for the content-indexer API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"content-indexer/domain"
)

const maxErrorBody = 64 << 10

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d %s: %s", e.Status, e.Code, e.Message)
}

type StatsResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Stats   domain.IndexStats `json:"stats"`
}

type EntriesResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Entries []domain.Entry    `json:"entries"`
	Stats   domain.IndexStats `json:"stats"`
}

type SearchResponse struct {
	Success bool                 `json:"success"`
	Query   string               `json:"query"`
	Entries []domain.ScoredEntry `json:"entries"`
	Stats   *domain.IndexStats   `json:"stats,omitempty"`
}

type ClearResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Removed int               `json:"removed"`
	Stats   domain.IndexStats `json:"stats"`
}

type TestDataResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Entries []string          `json:"entries"`
	Stats   domain.IndexStats `json:"stats"`
}

type WebhookResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Event   string              `json:"event"`
	Shape   domain.PayloadShape `json:"shape"`
	Action  domain.MutationKind `json:"action"`
	UID     string              `json:"uid,omitempty"`
	Stats   domain.IndexStats   `json:"stats"`
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SearchOptions are the optional search parameters.
type SearchOptions struct {
	ContentType string
	Locale      string
	Limit       int
}

// ListOptions selects one listing dimension.
type ListOptions struct {
	ContentType string
	Locale      string
}

// Client talks to one content-indexer instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client. timeout applies to every request except Watch.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Stats(ctx context.Context) (*StatsResponse, error) {
	var out StatsResponse
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) List(ctx context.Context, opts ListOptions) (*EntriesResponse, error) {
	q := url.Values{}
	if opts.ContentType != "" {
		q.Set("contentType", opts.ContentType)
	}
	if opts.Locale != "" {
		q.Set("locale", opts.Locale)
	}
	var out EntriesResponse
	if err := c.do(ctx, http.MethodGet, withQuery("/api/entries", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	if opts.ContentType != "" {
		q.Set("contentType", opts.ContentType)
	}
	if opts.Locale != "" {
		q.Set("locale", opts.Locale)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	var out SearchResponse
	if err := c.do(ctx, http.MethodGet, withQuery("/api/search", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Clear(ctx context.Context) (*ClearResponse, error) {
	var out ClearResponse
	if err := c.do(ctx, http.MethodPost, "/api/clear-index", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InitIndex loads the demo catalog.
func (c *Client) InitIndex(ctx context.Context) (*StatsResponse, error) {
	var out StatsResponse
	if err := c.do(ctx, http.MethodPost, "/api/init-index", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SeedTestData replays the sample webhooks.
func (c *Client) SeedTestData(ctx context.Context) (*TestDataResponse, error) {
	var out TestDataResponse
	if err := c.do(ctx, http.MethodPost, "/api/test-data", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendWebhook posts a raw webhook body as the CMS would.
func (c *Client) SendWebhook(ctx context.Context, body []byte) (*WebhookResponse, error) {
	var out WebhookResponse
	if err := c.do(ctx, http.MethodPost, "/api/webhook", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Status: resp.StatusCode}

	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error.Code != "" {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// IsAPIError reports whether err carries a server error with the given code.
func IsAPIError(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

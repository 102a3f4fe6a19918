// Package client is a Go client for the viewer's REST API.
//
// Every search response is run through the binary decode engine exactly
// once, so callers see []byte values for binary columns instead of the
// base64 strings the service puts on the wire.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dataview-lab/dataview-go/result"
)

// SearchRequest describes one search against the dataset.
type SearchRequest struct {
	// Columns to return. Nil/empty means all columns.
	Columns []string `json:"columns,omitempty"`

	// Filters is the filter JSON produced by the UI's filter editors.
	Filters json.RawMessage `json:"filters,omitempty"`

	// Limit caps the number of returned rows. Zero means the server
	// default.
	Limit int `json:"limit,omitempty"`

	// Offset skips rows for paging.
	Offset int `json:"offset,omitempty"`
}

// SearchResponse is a decoded result set: binary-bearing columns hold
// []byte at every depth the schema indicates.
type SearchResponse struct {
	Schema []result.SchemaField `json:"schema"`
	Rows   []result.Row         `json:"rows"`
}

// Client talks to one viewer service.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs a search and decodes the binary columns of the response.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	var resp SearchResponse
	if err := c.do(ctx, http.MethodPost, "/api/search", body, &resp); err != nil {
		return nil, err
	}

	resp.Rows = result.DecodeBinaryColumns(resp.Rows, resp.Schema)
	return &resp, nil
}

// Schema fetches the dataset's column schema.
func (c *Client) Schema(ctx context.Context) ([]result.SchemaField, error) {
	var resp struct {
		Schema []result.SchemaField `json:"schema"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/schema", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Schema, nil
}

// Ping checks service liveness and returns the view configuration.
func (c *Client) Ping(ctx context.Context) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodGet, "/ping", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// apiError surfaces the service's JSON error body when one is present.
func apiError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		return fmt.Errorf("%s: %s", resp.Status, body.Error)
	}
	return fmt.Errorf("unexpected status %s", resp.Status)
}

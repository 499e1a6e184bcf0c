package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a running daemon's control API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient constructs a client for the daemon listening at bind, which may
// be a bare host:port or a full URL. The token may be empty when the daemon
// does not require authentication.
func NewClient(bind, token string) *Client {
	base := strings.TrimSpace(bind)
	if base != "" && !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		token:   token,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Status fetches the daemon's runtime state.
func (c *Client) Status(ctx context.Context) (*DaemonStatus, error) {
	var status DaemonStatus
	if err := c.do(ctx, http.MethodGet, "/api/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Process asks the daemon to sweep the books directory now.
func (c *Client) Process(ctx context.Context) (*SweepReport, error) {
	var report SweepReport
	if err := c.do(ctx, http.MethodPost, "/api/process", &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Watch asks the daemon to ensure the folder watcher is running.
func (c *Client) Watch(ctx context.Context) (*DaemonStatus, error) {
	var status DaemonStatus
	if err := c.do(ctx, http.MethodPost, "/api/watch", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Books lists book folders and whether each has been processed.
func (c *Client) Books(ctx context.Context) ([]BookSummary, error) {
	var resp BookListResponse
	if err := c.do(ctx, http.MethodGet, "/api/books", &resp); err != nil {
		return nil, err
	}
	return resp.Books, nil
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("daemon request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			return fmt.Errorf("daemon request %s: %s", path, payload.Error)
		}
		return fmt.Errorf("daemon request %s: unexpected status %s", path, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("daemon response %s: %w", path, err)
	}
	return nil
}

// Package deploy uploads a theme to a remote store as a draft and
// publishes it. It speaks a small JSON protocol: one PUT per file.
package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the remote theme API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a client. baseURL and token are required.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("deploy base URL is required")
	}
	if token == "" {
		return nil, fmt.Errorf("deploy token is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type draftRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type draftResponse struct {
	ID string `json:"id"`
}

type entryRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CreateDraft creates an unpublished theme and returns its id.
func (c *Client) CreateDraft(ctx context.Context, name string) (string, error) {
	var resp draftResponse
	if err := c.do(ctx, http.MethodPost, "/themes", draftRequest{Name: name, Role: "unpublished"}, &resp); err != nil {
		return "", fmt.Errorf("create draft: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("create draft: response has no id")
	}
	return resp.ID, nil
}

// UploadEntry writes one file of a draft theme.
func (c *Client) UploadEntry(ctx context.Context, id, key, content string) error {
	if err := c.do(ctx, http.MethodPut, "/themes/"+url.PathEscape(id)+"/assets", entryRequest{Key: key, Value: content}, nil); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

// Publish makes a draft theme live.
func (c *Client) Publish(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodPost, "/themes/"+url.PathEscape(id)+"/publish", nil, nil); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// StatusError is a non-2xx answer.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote returned status %d: %s", e.Code, e.Body)
}

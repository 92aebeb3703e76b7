// Package client talks to the item API over HTTP.
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
	"strings"
	"time"

	"itemstore/internal/shared"
)

var (
	ErrNotFound      = errors.New("item not found")
	ErrAlreadyExists = errors.New(shared.MsgItemExists)
)

// HTTPError is any non-2xx answer that does not map to a sentinel error.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, strings.TrimSpace(string(e.Body)))
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(cfg *shared.ClientConfig) *Client {
	return &Client{
		BaseURL: strings.TrimRight(cfg.ServerURL, "/"),
		HTTP:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

func (c *Client) itemPath(id string) string {
	return "/items/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, in any) (*http.Response, []byte, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, b, nil
}

// statusError maps a response onto the client's error values. want is the
// success code for the call.
func statusError(resp *http.Response, body []byte, want int) error {
	switch {
	case resp.StatusCode == want:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		var er shared.ErrorResponse
		if json.Unmarshal(body, &er) == nil && er.Error == shared.MsgItemExists {
			return ErrAlreadyExists
		}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Body: body}
}

func (c *Client) List(ctx context.Context) ([]shared.Item, error) {
	resp, b, err := c.do(ctx, http.MethodGet, "/items", nil)
	if err != nil {
		return nil, err
	}
	if err := statusError(resp, b, http.StatusOK); err != nil {
		return nil, err
	}

	var items []shared.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return items, nil
}

func (c *Client) Get(ctx context.Context, id string) (shared.Item, error) {
	resp, b, err := c.do(ctx, http.MethodGet, c.itemPath(id), nil)
	if err != nil {
		return shared.Item{}, err
	}
	if err := statusError(resp, b, http.StatusOK); err != nil {
		return shared.Item{}, err
	}

	item, err := shared.DecodeItem(b)
	if err != nil {
		return shared.Item{}, fmt.Errorf("decode item: %w", err)
	}
	return item, nil
}

func (c *Client) Create(ctx context.Context, item shared.Item) error {
	resp, b, err := c.do(ctx, http.MethodPost, "/items", item)
	if err != nil {
		return err
	}
	return statusError(resp, b, http.StatusCreated)
}

func (c *Client) Update(ctx context.Context, id string, item shared.Item) error {
	resp, b, err := c.do(ctx, http.MethodPut, c.itemPath(id), item)
	if err != nil {
		return err
	}
	return statusError(resp, b, http.StatusOK)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	resp, b, err := c.do(ctx, http.MethodDelete, c.itemPath(id), nil)
	if err != nil {
		return err
	}
	return statusError(resp, b, http.StatusNoContent)
}

func (c *Client) Health(ctx context.Context) (shared.HealthResponse, error) {
	var hr shared.HealthResponse
	resp, b, err := c.do(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return hr, err
	}
	if err := statusError(resp, b, http.StatusOK); err != nil {
		return hr, err
	}
	if err := json.Unmarshal(b, &hr); err != nil {
		return hr, fmt.Errorf("decode health: %w", err)
	}
	return hr, nil
}

package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds every fetch, connection setup through body read.
	DefaultTimeout   = 10 * time.Second
	defaultUserAgent = "glance/0.1"
	maxBodyBytes     = 4 << 20
)

// Fetcher retrieves raw response bodies. *Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client issues single blocking GETs with a fixed timeout.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient builds a Client. A non-positive timeout uses DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}
}

// Timeout returns the per-request timeout in effect.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}

// Fetch GETs url and returns the body. Every failure is a *Error of kind
// KindTransport; there are no retries.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if c == nil {
		return nil, Transport(url, fmt.Errorf("client is nil"))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, Transport(url, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, Transport(url, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:   KindTransport,
			URL:    url,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, Transport(url, fmt.Errorf("read body: %w", err))
	}
	return body, nil
}

// DecodeJSON unmarshals data into dest, reporting failures as KindDecode.
func DecodeJSON(data []byte, dest any) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return Decode(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

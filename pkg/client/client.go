// Package client is the Go SDK for the platform's action endpoints.
// It calls an action once, decodes the uniform result envelope, and
// never retries: a user-initiated submission maps to exactly one
// request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"
)

// CSRFHeader carries the anti-forgery token on mutating calls.
const CSRFHeader = "X-CSRF-Token"

// Result mirrors the server's action envelope. Exactly one variant is
// populated.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// Client talks to one platform instance. The cookie jar carries the
// session across calls, so a Client is a logged-in identity.
type Client struct {
	base string
	http *http.Client

	mu   sync.Mutex
	csrf string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client. The jar of the
// replacement is used as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New constructs a Client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Jar: jar, Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// EnsureCSRF fetches an anti-forgery token if none is cached yet.
func (c *Client) EnsureCSRF(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.csrf != "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/csrf", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("client: csrf endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	c.csrf = body.Token
	return nil
}

func (c *Client) token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.csrf
}

// Post calls a mutating action endpoint and returns the decoded
// envelope. Transport failures are returned as errors; action
// failures arrive inside the envelope.
func Post[T any](ctx context.Context, c *Client, path string, payload any) (Result[T], error) {
	var zero Result[T]
	if err := c.EnsureCSRF(ctx); err != nil {
		return zero, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return zero, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return zero, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(CSRFHeader, c.token())

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	var res Result[T]
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return zero, fmt.Errorf("client: decode envelope: %w", err)
	}
	return res, nil
}

// Get calls a read endpoint returning a bare JSON payload.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var zero T
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return zero, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return zero, fmt.Errorf("client: %s returned %d", path, resp.StatusCode)
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return zero, err
	}
	return out, nil
}

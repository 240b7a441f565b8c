// Package device talks HTTP to the dryer's control server.
package device

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Paths served by the dryer. The debug variants are tried first.
const (
	PathDebugProfiles = "/debug/profiles"
	PathProfiles      = "/profiles"
	PathDebugStatus   = "/debug/status"
	PathStatus        = "/status"
	PathLive          = "/ws"
)

const (
	defaultHTTPTimeout = 5 * time.Second
	maxBodyBytes       = 1 << 20 // 1 MB
)

// ErrHTTPStatus is returned for any non-2xx response.
var ErrHTTPStatus = errors.New("unexpected http status")

// Client performs JSON GETs against one device base URL.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// NewClient validates baseURL (http or https) and applies timeout to every request.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &Client{baseURL: u, http: &http.Client{Timeout: timeout}}, nil
}

// BaseURL returns the normalized device URL.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// GetJSON fetches path and decodes the body into out. Network errors, non-2xx
// statuses and undecodable bodies are all errors.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	endpoint := c.resolve(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return fmt.Errorf("get %s: %w: %d", endpoint, ErrHTTPStatus, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) resolve(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	return u.String()
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("parse device url %q: %w", raw, err)
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return nil, fmt.Errorf("device url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("device url %q: missing host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

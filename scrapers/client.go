package scrapers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// ClientConfig controls timeouts and the retry budget for outbound
// requests. Retries only apply to transient failures (connection errors
// and 5xx responses), which retryablehttp handles itself.
type ClientConfig struct {
	Timeout    time.Duration
	MaxRetries int
	UserAgent  string
}

// Client is the HTTP client shared by all connectors.
type Client struct {
	http      *retryablehttp.Client
	userAgent string
}

// NewClient builds a retrying client from the given config.
func NewClient(cfg ClientConfig) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.MaxRetries
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 4 * time.Second
	rc.Logger = nil
	if cfg.Timeout > 0 {
		rc.HTTPClient.Timeout = cfg.Timeout
	}

	return &Client{
		http:      rc,
		userAgent: cfg.UserAgent,
	}
}

// GetJSON issues a GET request and decodes the JSON response into out.
// Non-200 responses are returned as errors with a truncated body excerpt.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

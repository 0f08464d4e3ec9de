// internal/openmeteo/client.go
// Package openmeteo performs the outbound HTTP calls against the
// Open-Meteo APIs.
package openmeteo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// Client issues single GET requests with a bounded timeout and a fixed
// identifying header set. It deliberately collapses every failure mode
// into one "no data" outcome: callers map that to their own messages.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient returns a Client whose requests are bounded by timeout and
// identified by userAgent.
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// Fetch performs one GET against the fully-formed url and returns the
// response body when the status is 2xx and the body is valid JSON. Any
// transport error, timeout, non-2xx status, or malformed body yields
// ok == false with no detail; the payload is never partial.
func (c *Client) Fetch(ctx context.Context, url string) (json.RawMessage, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false
	}
	body = bytes.TrimSpace(body)
	if !json.Valid(body) {
		return nil, false
	}
	return json.RawMessage(body), true
}

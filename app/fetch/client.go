package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const acceptHeader = "application/rss+xml, application/atom+xml, application/feed+json, application/json, application/xml, text/xml"

// Client fetches feed documents over HTTP with conditional GET support.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	maxBodySize int64
}

// Result is the outcome of one fetch. A 304 response sets NotModified and
// carries no body.
type Result struct {
	Status       int
	Body         []byte
	ETag         string
	LastModified string
	NotModified  bool
}

func NewClient(userAgent string, timeout time.Duration, maxBodySize int64) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent:   userAgent,
		maxBodySize: maxBodySize,
	}
}

// Get fetches url. A non-empty etag or lastModified from a previous fetch
// is sent as If-None-Match / If-Modified-Since so an unchanged feed comes
// back as a bodyless 304.
func (c *Client) Get(ctx context.Context, url, etag, lastModified string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptHeader)
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	if lastModified != "" {
		req.Header.Set("If-Modified-Since", lastModified)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	result := &Result{
		Status:       resp.StatusCode,
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
	}

	if resp.StatusCode == http.StatusNotModified {
		result.NotModified = true
		slog.Debug("Feed unchanged", "url", url, "duration", time.Since(start))
		return result, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body := resp.Body
	if c.maxBodySize > 0 {
		body = struct {
			io.Reader
			io.Closer
		}{io.LimitReader(resp.Body, c.maxBodySize+1), resp.Body}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if c.maxBodySize > 0 && int64(len(data)) > c.maxBodySize {
		return nil, fmt.Errorf("response body exceeds %d bytes", c.maxBodySize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	result.Body = data
	slog.Debug("Feed fetched", "url", url, "status", resp.StatusCode,
		"bytes", len(data), "duration", time.Since(start))
	return result, nil
}

// Package books is a small client for the Google Books volumes API.
package books

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Google Books volumes endpoint.
const DefaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("books API error %d: %s", e.StatusCode, e.Body)
}

// Client queries the volumes endpoint.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. A timeout set by
// WithTimeout is carried over when hc has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		if hc.Timeout == 0 && c.httpClient.Timeout > 0 {
			cp := *hc
			cp.Timeout = c.httpClient.Timeout
			hc = &cp
		}
		c.httpClient = hc
	}
}

// WithTimeout sets a per-request timeout on the HTTP client in use.
// Zero keeps the client default. The caller's client is never mutated.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// WithRateLimit paces outgoing requests to rps per second. Zero disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewClient creates a client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query is a single volumes search.
type Query struct {
	Terms      string
	MaxResults int
}

// SearchTitle returns volumes matching a free-text title query.
func (c *Client) SearchTitle(ctx context.Context, title string) ([]Book, error) {
	return c.Search(ctx, Query{Terms: title})
}

// SearchAuthor returns up to limit volumes written by author.
func (c *Client) SearchAuthor(ctx context.Context, author string, limit int) ([]Book, error) {
	return c.Search(ctx, Query{Terms: "inauthor:" + author, MaxResults: limit})
}

// Search runs q once. No retries are attempted.
func (c *Client) Search(ctx context.Context, q Query) ([]Book, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("books rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(q), nil)
	if err != nil {
		return nil, fmt.Errorf("build books request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("books request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var vr volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("decode books response: %w", err)
	}

	out := make([]Book, 0, len(vr.Items))
	for _, v := range vr.Items {
		out = append(out, v.book())
	}
	return out, nil
}

func (c *Client) searchURL(q Query) string {
	params := url.Values{}
	params.Set("q", q.Terms)
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	if q.MaxResults > 0 {
		params.Set("maxResults", strconv.Itoa(q.MaxResults))
	}
	return c.baseURL + "?" + params.Encode()
}

package dyte

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/third774/dyte-remix/internal/domain"
	"github.com/third774/dyte-remix/internal/metrics"
)

const (
	DefaultBaseURL = "https://api.dyte.io/"

	meetingsPath = "v2/meetings"

	// maxErrorBody caps how much of an upstream error body is kept on APIError.
	maxErrorBody = 512
)

// Client talks to the Dyte v2 REST API.
type Client struct {
	baseURL       string
	authHeader    string
	httpClient    *http.Client
	searchRetries uint64
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithSearchRetries sets how many extra attempts a failed search gets.
// Creates and participant calls are never retried.
func WithSearchRetries(n int) Option {
	return func(c *Client) {
		if n < 0 {
			n = 0
		}
		c.searchRetries = uint64(n)
	}
}

func NewClient(baseURL, authHeader string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/",
		authHeader: authHeader,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL is the API root handed to the embedded meeting client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) meetingsURL() string {
	return c.baseURL + meetingsPath
}

// APIError describes a failed Dyte call. It matches domain.ErrUpstreamUnavailable.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("dyte %s: unexpected status %d: %s", e.Operation, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("dyte %s: %v", e.Operation, e.Err)
}

func (e *APIError) Unwrap() []error {
	if e.Err != nil {
		return []error{domain.ErrUpstreamUnavailable, e.Err}
	}
	return []error{domain.ErrUpstreamUnavailable}
}

// Temporary reports whether repeating the same idempotent request could succeed.
func (e *APIError) Temporary() bool {
	if e.StatusCode == 0 {
		return !errors.Is(e.Err, context.Canceled)
	}
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func (c *Client) do(ctx context.Context, operation, method, url string, body, out interface{}) (err error) {
	defer func() {
		metrics.RecordDyteRequest(operation, err)
	}()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", operation, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authHeader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(excerpt)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Operation: operation, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

// Package analyze talks to the external hackathon-analysis service. The
// service takes a hackathon name and returns a generated write-up about it.
package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// ErrUnavailable is returned when the analysis service cannot be reached
// after all retries.
var ErrUnavailable = errors.New("analysis service unavailable")

// Client is an HTTP client for the analysis service with per-request
// timeouts and simple retry.
type Client struct {
	baseURL string
	client  *http.Client
	retries int
	backoff time.Duration
	timeout time.Duration
	logger  *slog.Logger
}

type analyzeRequest struct {
	HackathonName string `json:"hackathon_name"`
}

type analyzeResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = n }
}

// WithBackoff sets the base delay between retry attempts.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// NewClient creates a client for the analysis service at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid analysis service url: %w", err)
	}

	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		retries: 2,
		backoff: 500 * time.Millisecond,
		timeout: timeout,
		logger:  logger.With("component", "analyze"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Analyze requests an analysis of the named hackathon and returns the
// service's data object as raw JSON. It retries transient failures and
// returns ErrUnavailable once retries are spent.
func (c *Client) Analyze(ctx context.Context, hackathonName string) (json.RawMessage, error) {
	if hackathonName == "" {
		return nil, errors.New("hackathon name is required")
	}

	body, err := json.Marshal(analyzeRequest{HackathonName: hackathonName})
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}

		data, retryable, err := c.doRequest(ctx, body)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		c.logger.Warn("analysis request failed",
			"attempt", attempt+1,
			"error", err)
	}

	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

// doRequest performs one attempt. The second return value reports whether
// the failure is worth retrying.
func (c *Client) doRequest(ctx context.Context, body []byte) (json.RawMessage, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/analyze-hackathon", bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}

	var out analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, false, fmt.Errorf("decode analysis response: %w", err)
	}
	if !out.Success {
		if out.Error == "" {
			out.Error = "analysis failed"
		}
		return nil, false, errors.New(out.Error)
	}

	return out.Data, false, nil
}

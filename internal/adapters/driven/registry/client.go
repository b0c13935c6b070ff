package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/regsync-labs/regsync-cli/internal/core/domain"
	"github.com/regsync-labs/regsync-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the maximum number of retries for transient errors.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries; it grows
	// linearly with the attempt number.
	RetryDelay = time.Second
)

// Client is an HTTP client for the register API with retries and rate
// limiting.
type Client struct {
	httpClient  *http.Client
	rateLimiter *RateLimiter
	retryDelay  time.Duration
}

// NewClient creates a register API client.
func NewClient(rl RateLimitConfig) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		rateLimiter: NewRateLimiter(rl),
		retryDelay:  RetryDelay,
	}
}

// getJSON fetches url and decodes the response body into v.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// get fetches url, retrying transient failures up to MaxRetries times.
// 404 responses map to domain.ErrNotFound; other client errors are
// returned as an APIError without retry.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			logger.Debug("Retrying %s (attempt %d/%d): %v", url, attempt, MaxRetries, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay * time.Duration(attempt)):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := c.doOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		if !retryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// doOnce performs a single GET.
func (c *Client) doOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", url, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", domain.ErrTransport, url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", domain.ErrTransport, url, err)
		}
		return body, nil

	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, url)

	case resp.StatusCode == http.StatusTooManyRequests:
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			c.rateLimiter.RecordRetryAfter(seconds)
		} else {
			c.rateLimiter.RecordRetryAfter(0)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, URL: url}

	default:
		return nil, &APIError{StatusCode: resp.StatusCode, URL: url}
	}
}

// retryable reports whether a request error is transient.
func retryable(err error) bool {
	// Network-level failures are worth retrying too.
	return IsRetryable(err) || errors.Is(err, domain.ErrTransport)
}

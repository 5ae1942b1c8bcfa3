package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	httpTimeout = 10 * time.Second

	// MaxBodySize bounds a fetched body. Catalog imports are a few hundred
	// kilobytes at most.
	MaxBodySize = 16 << 20

	userAgent = "certpaths"
)

var (
	// ErrNotFound is returned when the server answers 404.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for connection failures and 5xx responses.
	ErrNetwork = errors.New("network error")

	// ErrStatus is returned for any other non-200 response.
	ErrStatus = errors.New("unexpected status")

	// ErrTooLarge is returned when a body exceeds MaxBodySize.
	ErrTooLarge = errors.New("response too large")
)

// Client performs GET requests with retry.
type Client struct {
	HTTP     *http.Client
	Attempts int
	Delay    time.Duration
}

// NewClient returns a Client with a 10s request timeout and 3 attempts
// starting at a one second backoff.
func NewClient() *Client {
	return &Client{
		HTTP:     &http.Client{Timeout: httpTimeout},
		Attempts: 3,
		Delay:    time.Second,
	}
}

// Fetch returns the body of url.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := Retry(ctx, c.Attempts, c.Delay, func() error {
		b, err := c.get(ctx, url)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	return body, err
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	if len(data) > MaxBodySize {
		return nil, ErrTooLarge
	}
	return data, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests, code >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: %d", ErrStatus, code)
	}
}

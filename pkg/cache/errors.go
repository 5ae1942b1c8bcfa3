package cache

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/certpaths/pkg/httputil"
)

// Sentinel errors for caching operations.
var (
	// ErrNetwork is returned when a remote backend cannot be reached.
	ErrNetwork = errors.New("network error")

	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")
)

const retryAttempts = 3

// retryDelay is the first backoff step; tests shorten it.
var retryDelay = 200 * time.Millisecond

// Retryable marks err as transient so backend calls repeat it.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &httputil.RetryableError{Err: err}
}

// IsRetryable reports whether err was marked with Retryable.
func IsRetryable(err error) bool {
	var re *httputil.RetryableError
	return errors.As(err, &re)
}

func retry(ctx context.Context, fn func() error) error {
	return httputil.Retry(ctx, retryAttempts, retryDelay, fn)
}

// Package httputil fetches remote catalog imports over HTTP.
//
// # Fetching
//
// [Client.Fetch] performs a GET and returns the response body. Transient
// failures (connection errors, 5xx and 429 responses) are wrapped in
// [RetryableError] and retried by [Retry] with exponential backoff;
// 404 maps to [ErrNotFound] and any other status to [ErrStatus].
//
//	c := httputil.NewClient()
//	body, err := c.Fetch(ctx, "https://example.com/catalog.yaml")
//
// # Retry
//
// [Retry] only repeats errors wrapped with [RetryableError]. The delay
// doubles after each failed attempt and cancellation of ctx aborts the
// wait immediately.
package httputil

// Package cache stores rendered artifacts between runs.
//
// A [Cache] is a byte store with per-entry TTLs. Three backends exist:
//
//   - [FileCache]: one JSON file per entry under a local directory (default)
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys come from a [Keyer], which hashes the catalog content together with
// every option that changes the output, so a stale artifact can never be
// served for a changed catalog.
package cache

import (
	"context"
	"time"
)

// Default TTLs.
const (
	GraphTTL    = 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a key/value byte store.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

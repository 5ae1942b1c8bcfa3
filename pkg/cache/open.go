package cache

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend string
	Dir     string        // file backend directory
	TTL     time.Duration // entry lifetime; 0 uses ArtifactTTL
	Redis   RedisConfig
}

// Open returns the backend named by cfg.Backend. An empty backend means
// file.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q (want file, redis or none)", ErrUnknownBackend, cfg.Backend)
	}
}

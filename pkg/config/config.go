// Package config loads certpaths settings from defaults, an optional TOML
// file, CERTPATHS_* environment variables and command-line flags.
//
// Later sources win: Flags > Env > Config File > Defaults. Keys are
// dot-delimited ("layout.xgap", "cache.redis.addr"); environment variables
// map underscores to dots, so CERTPATHS_CACHE_BACKEND sets cache.backend.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/matzehuels/certpaths/pkg/cache"
	"github.com/matzehuels/certpaths/pkg/catalog"
	errs "github.com/matzehuels/certpaths/pkg/errors"
	"github.com/matzehuels/certpaths/pkg/layout"
)

const (
	// DefaultFile is read from the working directory when no path is given.
	DefaultFile = "certpaths.toml"

	// EnvPrefix prefixes every environment variable.
	EnvPrefix = "CERTPATHS_"
)

// Config holds all configuration for the application.
type Config struct {
	Catalog string        `koanf:"catalog"` // catalog file or URL; empty uses the bundled catalog
	Vendor  string        `koanf:"vendor"`
	Layout  layout.Params `koanf:"layout"`
	Cache   Cache         `koanf:"cache"`
	Log     Log           `koanf:"log"`
}

// Cache selects the artifact cache backend.
type Cache struct {
	Backend string        `koanf:"backend"` // file, redis or none
	Dir     string        `koanf:"dir"`     // empty uses the XDG cache directory
	TTL     time.Duration `koanf:"ttl"`
	Redis   Redis         `koanf:"redis"`
}

// Redis is the connection used by the redis backend.
type Redis struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// Log controls the CLI logger.
type Log struct {
	Level string `koanf:"level"` // debug, info, warn or error
}

// flagKeys maps command-line flag names onto configuration keys. Flags not
// listed here are not configuration.
var flagKeys = map[string]string{
	"catalog":       "catalog",
	"vendor":        "vendor",
	"xgap":          "layout.xgap",
	"ygap":          "layout.ygap",
	"xoffset":       "layout.xoffset",
	"yoffset":       "layout.yoffset",
	"cache-backend": "cache.backend",
	"cache-dir":     "cache.dir",
	"redis-addr":    "cache.redis.addr",
	"log-level":     "log.level",
}

// Defaults returns the built-in configuration as a flat key map.
func Defaults() map[string]any {
	p := layout.DefaultParams()
	return map[string]any{
		"catalog":          "",
		"vendor":           string(catalog.VendorAWS),
		"layout.xgap":      p.XGap,
		"layout.ygap":      p.YGap,
		"layout.xoffset":   p.XOffset,
		"layout.yoffset":   p.YOffset,
		"cache.backend":    cache.BackendFile,
		"cache.dir":        "",
		"cache.ttl":        cache.ArtifactTTL.String(),
		"cache.redis.addr": "localhost:6379",
		"cache.redis.db":   0,
		"log.level":        "info",
	}
}

// Load loads configuration from defaults, config file, environment variables, and flags.
// Priority: Flags > Env > Config File > Defaults
//
// An explicit path must exist. When path is empty, DefaultFile is read if
// present and silently skipped otherwise.
func Load(path string, f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(makeMapProvider(Defaults()), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	} else if _, err := os.Stat(path); err != nil {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "config %s", path)
		}
	}

	// 3. Environment variables, e.g. CERTPATHS_LAYOUT_XGAP=320
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.ProviderWithFlag(f, ".", k, flagKey(f)), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}

func flagKey(fs *pflag.FlagSet) func(*pflag.Flag) (string, any) {
	return func(f *pflag.Flag) (string, any) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return "", nil
		}
		return key, posflag.FlagVal(fs, f)
	}
}

// Validate normalizes the vendor name and rejects unusable values.
func (c *Config) Validate() error {
	v, ok := catalog.ParseVendor(c.Vendor)
	if !ok {
		return errs.New(errs.ErrCodeInvalidConfig, "unknown vendor %q", c.Vendor)
	}
	c.Vendor = string(v)

	if err := c.Layout.Validate(); err != nil {
		return err
	}

	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown log level %q", c.Log.Level)
	}
	return nil
}

// CacheConfig converts the cache section for cache.Open.
func (c *Config) CacheConfig() cache.Config {
	return cache.Config{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		TTL:     c.Cache.TTL,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		},
	}
}

// mapProvider serves a flat, dot-delimited key map as a koanf provider.
type mapProvider struct {
	m map[string]any
}

func makeMapProvider(m map[string]any) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]any, error) {
	return maps.Unflatten(p.m, "."), nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}

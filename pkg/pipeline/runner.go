package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/certpaths/pkg/cache"
	"github.com/matzehuels/certpaths/pkg/catalog"
	"github.com/matzehuels/certpaths/pkg/filter"
	"github.com/matzehuels/certpaths/pkg/graph"
	"github.com/matzehuels/certpaths/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeGraph    = "graph"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cached artifacts. Zero uses cache.ArtifactTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → build → resolve → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	cat := opts.Catalog
	if cat == nil {
		var err error
		if cat, err = r.Load(ctx, opts.Source); err != nil {
			return nil, err
		}
	}
	result.Catalog = cat
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.CertCount = len(cat.Certs)
	result.Stats.LinkCount = len(cat.Links)

	// Stage 2: Build
	buildStart := time.Now()
	g, hit, err := r.BuildWithCacheInfo(ctx, cat, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = g
	result.Choices = filter.Options(g.Certs())
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.BuildHit = hit

	r.Logger.Info("built graph",
		"vendor", opts.Vendor,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"cached", hit,
		"duration", result.Stats.BuildTime)

	// Stage 3: Resolve
	resolveStart := time.Now()
	visible := r.Resolve(ctx, g, opts.FilterState())
	result.Visible = visible
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.Stats.VisibleNodes = visible.NodeCount()
	result.Stats.VisibleEdges = visible.EdgeCount()

	if data, err := graph.MarshalGraph(visible); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, visible, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads and validates a catalog, reporting to the pipeline hooks.
// Catalog validation always runs; it is never served from cache.
func (r *Runner) Load(ctx context.Context, source string) (*catalog.Catalog, error) {
	name := sourceName(source)
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, name)

	start := time.Now()
	cat, err := Load(ctx, source)
	if err != nil {
		hooks.OnLoadComplete(ctx, name, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, name, len(cat.Certs), len(cat.Links), time.Since(start), nil)

	r.Logger.Info("loaded catalog",
		"source", name,
		"certs", len(cat.Certs),
		"links", len(cat.Links),
		"duration", time.Since(start))
	for _, w := range cat.Warnings {
		r.Logger.Warn("catalog field dropped", "detail", w)
	}
	return cat, nil
}

// BuildWithCacheInfo assembles the vendor graph with caching and returns
// cache hit info. Cache keys include the catalog hash, so an edited catalog
// never hits a stale entry.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, cat *catalog.Catalog, opts Options) (*graph.Graph, bool, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	cacheKey := r.Keyer.GraphKey(cat.Hash(), string(opts.Vendor), opts.GraphKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := graph.ReadGraph(bytes.NewReader(data)); err == nil {
				cacheHooks.OnCacheHit(ctx, keyTypeGraph)
				return g, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", cacheKey, "error", err)
		}
		cacheHooks.OnCacheMiss(ctx, keyTypeGraph)
	}

	certs, _ := cat.ForVendor(opts.Vendor)
	hooks.OnBuildStart(ctx, string(opts.Vendor), len(certs))
	start := time.Now()
	g, err := Build(cat, opts.Vendor, opts.Layout)
	if err != nil {
		hooks.OnBuildComplete(ctx, string(opts.Vendor), 0, 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnBuildComplete(ctx, string(opts.Vendor), g.NodeCount(), g.EdgeCount(), time.Since(start), nil)

	if data, err := graph.MarshalGraph(g); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.GraphTTL); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, keyTypeGraph, len(data))
		}
	}
	return g, false, nil
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, cat *catalog.Catalog, opts Options) (*graph.Graph, error) {
	g, _, err := r.BuildWithCacheInfo(ctx, cat, opts)
	return g, err
}

// Resolve applies a filter state and reports the result to the hooks.
func (r *Runner) Resolve(ctx context.Context, g *graph.Graph, s filter.State) *graph.Graph {
	start := time.Now()
	visible := filter.Resolve(g, s)
	observability.Pipeline().OnResolve(ctx, string(g.Vendor), visible.NodeCount(), g.NodeCount(), time.Since(start))

	r.Logger.Debug("resolved filters",
		"level", s.Level,
		"domain", s.Domain,
		"query", s.Query,
		"recommended", s.ShowRecommended,
		"visible", visible.NodeCount(),
		"total", g.NodeCount())
	return visible
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	graphHash := cache.Hash(graphData)

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			cacheHooks.OnCacheHit(ctx, keyTypeArtifact)
			return artifacts, true, nil
		}
		cacheHooks.OnCacheMiss(ctx, keyTypeArtifact)
	}

	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, g, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	ttl := r.TTL
	if ttl <= 0 {
		ttl = cache.ArtifactTTL
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about catalog
// loading, graph assembly, filtering, rendering, cache use and watch-mode
// reloads. Every hook defaults to a no-op, so library packages can emit
// events unconditionally.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLoadStart(ctx, source)
//	// ... validate ...
//	observability.Pipeline().OnLoadComplete(ctx, source, certs, links, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the catalog pipeline.
type PipelineHooks interface {
	// Load events (decode + validate)
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, certs, links int, duration time.Duration, err error)

	// Build events (layout + assemble for one vendor)
	OnBuildStart(ctx context.Context, vendor string, certs int)
	OnBuildComplete(ctx context.Context, vendor string, nodes, edges int, duration time.Duration, err error)

	// Resolve events (filter)
	OnResolve(ctx context.Context, vendor string, visible, total int, duration time.Duration)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Watch Hooks
// =============================================================================

// WatchHooks receives events from watch mode.
type WatchHooks interface {
	// OnChange records a debounced file change.
	OnChange(ctx context.Context, path string)

	// OnReload records the rebuild triggered by a change.
	OnReload(ctx context.Context, path string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string) {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnBuildStart(context.Context, string, int) {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnResolve(context.Context, string, int, int, time.Duration)         {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopWatchHooks is a no-op implementation of WatchHooks.
type NoopWatchHooks struct{}

func (NoopWatchHooks) OnChange(context.Context, string)                       {}
func (NoopWatchHooks) OnReload(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	watchHooks    WatchHooks    = NoopWatchHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetWatchHooks registers custom watch hooks.
func SetWatchHooks(h WatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		watchHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Watch returns the registered watch hooks.
func Watch() WatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return watchHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	watchHooks = NoopWatchHooks{}
}

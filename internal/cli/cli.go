package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/certpaths/pkg/buildinfo"
	"github.com/matzehuels/certpaths/pkg/cache"
	"github.com/matzehuels/certpaths/pkg/catalog"
	"github.com/matzehuels/certpaths/pkg/config"
	"github.com/matzehuels/certpaths/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "certpaths"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config *config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Certpaths maps IT certification paths as vendor graphs",
		Long: `Certpaths lays out a catalog of IT certifications as one graph per vendor,
with difficulty levels as columns and prerequisite links as edges, and renders
filtered views of it.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())

	defaults := config.Defaults()
	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
	pf.StringP("catalog", "c", "", "catalog file or http(s) URL (.json, .yaml, .toml); empty uses the bundled catalog")
	pf.String("vendor", defaults["vendor"].(string), "vendor to show")
	pf.String("cache-backend", cache.BackendFile, "cache backend: file, redis, none")
	pf.String("cache-dir", "", "cache directory for the file backend")
	pf.String("redis-addr", defaults["cache.redis.addr"].(string), "redis address for the redis backend")
	pf.String("log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.filtersCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.pathsCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// loadConfig resolves configuration from file, environment and the flags
// of the command being run, then applies the configured log level.
func (c *CLI) loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	c.SetLogLevel(level)
	c.Logger.Debug("loaded config", "vendor", cfg.Vendor, "catalog", sourceLabel(cfg.Catalog), "cache", cfg.Cache.Backend)
	return nil
}

// addLayoutFlags registers the grid geometry flags on commands that
// assemble graphs.
func addLayoutFlags(cmd *cobra.Command) {
	defaults := config.Defaults()
	cmd.Flags().Float64("xgap", defaults["layout.xgap"].(float64), "horizontal distance between level columns")
	cmd.Flags().Float64("ygap", defaults["layout.ygap"].(float64), "vertical distance between certifications")
	cmd.Flags().Float64("xoffset", defaults["layout.xoffset"].(float64), "left margin")
	cmd.Flags().Float64("yoffset", defaults["layout.yoffset"].(float64), "top margin")
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	runner := pipeline.NewRunner(c.newCache(ctx, noCache), nil, c.Logger)
	if c.Config != nil {
		runner.TTL = c.Config.Cache.TTL
	}
	return runner
}

// newCache opens the configured backend. Caching only speeds things up, so
// a backend that cannot be reached degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache || c.Config == nil {
		return cache.NewNullCache()
	}
	cfg, err := c.cacheConfig()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	cc, err := cache.Open(ctx, cfg)
	if err != nil {
		c.Logger.Warn("cache disabled", "backend", cfg.Backend, "error", err)
		return cache.NewNullCache()
	}
	return cc
}

func (c *CLI) cacheConfig() (cache.Config, error) {
	cfg := c.Config.CacheConfig()
	if cfg.Backend == cache.BackendFile && cfg.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			return cfg, err
		}
		cfg.Dir = dir
	}
	return cfg, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/certpaths/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions seeds pipeline options from the loaded configuration.
func (c *CLI) pipelineOptions() pipeline.Options {
	opts := pipeline.Options{Logger: c.Logger}
	if c.Config != nil {
		opts.Source = c.Config.Catalog
		opts.Vendor = catalog.Vendor(c.Config.Vendor)
		opts.Layout = c.Config.Layout
	}
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(parts[i]))
	}
	return parts
}

// basePath derives the base output path. An output with a known format
// extension loses it; an empty output becomes "certpaths-<vendor>".
func basePath(output string, vendor catalog.Vendor) string {
	if output == "" {
		return appName + "-" + strings.ToLower(string(vendor))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func sourceLabel(source string) string {
	if source == "" {
		return pipeline.SourceBundled
	}
	return source
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/certpaths/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the graph and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached graphs and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.cacheConfig()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if cfg.Backend == cache.BackendNone {
				printInfo("Caching is disabled")
				return nil
			}

			cc, err := cache.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				return fmt.Errorf("%s cache cannot be cleared", cfg.Backend)
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return err
			}

			printSuccess("Cleared %s cache", cfg.Backend)
			printDetail("%s", cacheLocation(cfg))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.cacheConfig()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(out, cacheLocation(cfg))
			return nil
		},
	}
}

// cacheLocation describes the backend: a directory for file, an address
// for redis.
func cacheLocation(cfg cache.Config) string {
	switch cfg.Backend {
	case cache.BackendRedis:
		return fmt.Sprintf("redis://%s/%d", cfg.Redis.Addr, cfg.Redis.DB)
	case cache.BackendNone:
		return "disabled"
	default:
		return cfg.Dir
	}
}

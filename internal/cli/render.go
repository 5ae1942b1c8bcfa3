package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/certpaths/pkg/errors"
	"github.com/matzehuels/certpaths/pkg/pipeline"
	"github.com/matzehuels/certpaths/pkg/watch"
)

// renderFlags holds the command-line flags for the render command that are
// not part of the shared configuration.
type renderFlags struct {
	formats string // comma-separated output formats
	output  string // output file (single format) or base path
	noCache bool   // bypass the artifact cache
	watch   bool   // re-render whenever the catalog file changes

	level           string
	domain          string
	query           string
	hideRecommended bool
	detailed        bool
	hideTraining    bool
}

// apply copies the filter and render flags onto opts.
func (f renderFlags) apply(opts *pipeline.Options) {
	opts.Level = f.level
	opts.Domain = f.domain
	opts.Query = f.query
	opts.HideRecommended = f.hideRecommended
	opts.Detailed = f.detailed
	opts.HideTraining = f.hideTraining
	opts.Formats = parseFormats(f.formats)
}

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a filtered vendor graph",
		Long: `Render a filtered vendor graph.

The vendor graph is assembled from the catalog, narrowed by the level,
domain and text filters, and written in each requested format. Required
links are drawn solid and heavy, recommended links dashed and light;
--hide-recommended drops the dashed ones entirely.

Formats: svg (default), dot, json, pdf, png. PDF and PNG need rsvg-convert.

With --watch the command keeps running and re-renders whenever the
catalog file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			flags.apply(&opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			if flags.watch {
				return c.watchRender(cmd.Context(), opts, flags)
			}
			return c.runRender(cmd.Context(), opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), dot, json, pdf, png (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-render when the catalog file changes")

	cmd.Flags().StringVar(&flags.level, "level", "", "show only this level (display name)")
	cmd.Flags().StringVar(&flags.domain, "domain", "", "show only this domain")
	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "show only certifications matching this text")
	cmd.Flags().BoolVar(&flags.hideRecommended, "hide-recommended", false, "hide recommended links")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "add level, domain and roles to node labels")
	cmd.Flags().BoolVar(&flags.hideTraining, "hide-training", false, "omit training labels on links")
	addLayoutFlags(cmd)

	return cmd
}

// runRender executes the pipeline once and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, flags renderFlags) error {
	runner := c.newRunner(ctx, flags.noCache)
	defer runner.Close()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, flags.output, basePath(flags.output, opts.Vendor))
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", opts.Vendor)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.VisibleEdges, result.Stats.VisibleNodes, result.CacheInfo.RenderHit)
	if result.Stats.VisibleNodes == 0 {
		printWarning("No certifications match the current filters")
	}
	return nil
}

// watchRender renders once, then again after every change to the catalog
// file, until ctx is cancelled.
func (c *CLI) watchRender(ctx context.Context, opts pipeline.Options, flags renderFlags) error {
	if opts.Source == "" || pipeline.IsRemote(opts.Source) {
		return errs.New(errs.ErrCodeInvalidInput, "--watch needs a local catalog file (--catalog)")
	}

	render := func(ctx context.Context) error {
		logger := c.Logger.With("run", newRunID())
		runOpts := opts
		runOpts.Logger = logger
		runner := c.newRunner(ctx, flags.noCache)
		runner.Logger = logger
		defer runner.Close()

		result, err := runner.Execute(ctx, runOpts)
		if err != nil {
			printError("%s", errs.UserMessage(err))
			return err
		}
		paths, err := writeArtifacts(result.Artifacts, opts.Formats, flags.output, basePath(flags.output, opts.Vendor))
		if err != nil {
			return err
		}
		printSuccess("Rendered %s (%d of %d visible)", opts.Vendor, result.Stats.VisibleNodes, result.Stats.NodeCount)
		for _, p := range paths {
			printFile(p)
		}
		return nil
	}

	w, err := watch.New(opts.Source, c.Logger)
	if err != nil {
		return err
	}
	// A broken catalog at startup is reported but does not stop watching.
	_ = render(ctx)
	printInfo("Watching %s (Ctrl+C to stop)", opts.Source)
	return w.Run(ctx, render)
}

// writeArtifacts writes each artifact to disk and returns the paths in
// format order. A single format with an explicit output goes to that path;
// otherwise files are named base.<format>.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, base string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

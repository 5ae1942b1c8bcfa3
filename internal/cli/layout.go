package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/certpaths/pkg/graph"
	"github.com/matzehuels/certpaths/pkg/layout"
)

// layoutCommand creates the layout command for assembling a vendor graph.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Assemble a vendor graph and write it as JSON",
		Long: `Assemble a vendor graph and write it as JSON.

Every certification of the vendor is placed on a grid: one column per
level (Fundamentals, Associate, Professional-Expert, Specialty) and one row
per certification within its column, in catalog order. Links become styled
edges. The result is written as graph JSON that 'render' and other tools
can consume.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default certpaths-<vendor>.graph.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd)

	return cmd
}

// runLayout loads the catalog, assembles the graph, and writes output.
func (c *CLI) runLayout(ctx context.Context, output string, noCache bool) error {
	opts := c.pipelineOptions()
	if err := opts.ValidateForBuild(); err != nil {
		return err
	}

	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	cat, err := runner.Load(ctx, opts.Source)
	if err != nil {
		return err
	}

	g, cacheHit, err := runner.BuildWithCacheInfo(ctx, cat, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", opts.Vendor) + ".graph.json"
	}
	if err := graph.WriteGraphFile(g, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	w, h := layout.Bounds(graphPositions(g), opts.Layout)
	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(g.NodeCount(), g.EdgeCount(), g.NodeCount(), cacheHit)
	printDetail("Canvas %.0f x %.0f", w, h)
	printNewline()
	printNextStep("Render", fmt.Sprintf("%s render --vendor %s", appName, opts.Vendor))

	return nil
}

func graphPositions(g *graph.Graph) []layout.Position {
	ps := make([]layout.Position, len(g.Nodes))
	for i, n := range g.Nodes {
		ps[i] = n.Position
	}
	return ps
}

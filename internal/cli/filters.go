package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/certpaths/pkg/catalog"
	"github.com/matzehuels/certpaths/pkg/filter"
	"github.com/matzehuels/certpaths/pkg/graph"
	"github.com/matzehuels/certpaths/pkg/pipeline"
)

// vendorGraph loads the configured catalog and assembles the graph of
// vendor, using the cache when enabled. An empty vendor uses the configured
// one.
func (c *CLI) vendorGraph(ctx context.Context, vendor catalog.Vendor) (*catalog.Catalog, *graph.Graph, error) {
	cat, err := pipeline.Load(ctx, c.pipelineOptions().Source)
	if err != nil {
		return nil, nil, err
	}
	g, err := c.buildGraph(ctx, cat, vendor)
	if err != nil {
		return nil, nil, err
	}
	return cat, g, nil
}

// buildGraph assembles the graph of vendor from an already loaded catalog.
func (c *CLI) buildGraph(ctx context.Context, cat *catalog.Catalog, vendor catalog.Vendor) (*graph.Graph, error) {
	opts := c.pipelineOptions()
	if vendor != "" {
		opts.Vendor = vendor
	}
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}

	runner := c.newRunner(ctx, false)
	defer runner.Close()
	return runner.Build(ctx, cat, opts)
}

// filtersCommand creates the filters command listing selectable values.
func (c *CLI) filtersCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List the level and domain filters a vendor offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, g, err := c.vendorGraph(cmd.Context(), "")
			if err != nil {
				return err
			}
			choices := filter.Options(g.Certs())
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(choices)
			}
			printChoices(g.Vendor, choices)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print choices as JSON")
	return cmd
}

func printChoices(vendor catalog.Vendor, ch filter.Choices) {
	fmt.Fprintln(out, StyleTitle.Render(string(vendor)))
	printKeyValue("Levels", strings.Join(ch.Levels, ", "))
	printKeyValue("Domains", strings.Join(ch.Domains, ", "))
}

// searchCommand creates the search command for text suggestions.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		limit      int
		allVendors bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Suggest certifications matching a text query",
		Long: `Suggest certifications matching a text query.

The query is matched case-insensitively against title, exam code, vendor,
level, roles and description. Suggestions come from the selected vendor
unless --all is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			var certs []catalog.Cert
			if allVendors {
				cat, err := pipeline.Load(cmd.Context(), c.pipelineOptions().Source)
				if err != nil {
					return err
				}
				certs = cat.Certs
			} else {
				_, g, err := c.vendorGraph(cmd.Context(), "")
				if err != nil {
					return err
				}
				certs = g.Certs()
			}

			matches := filter.Suggest(certs, query, limit)
			total := filter.Count(certs, query)
			if len(matches) == 0 {
				printInfo("No certifications match %q", query)
				return nil
			}
			for _, m := range matches {
				printCert(m)
			}
			if total > len(matches) {
				printDetail("%d more", total-len(matches))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", filter.DefaultSuggestLimit, "maximum number of suggestions")
	cmd.Flags().BoolVar(&allVendors, "all", false, "search every vendor")
	return cmd
}

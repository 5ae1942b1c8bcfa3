package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/certpaths/pkg/catalog"
	errs "github.com/matzehuels/certpaths/pkg/errors"
	"github.com/matzehuels/certpaths/pkg/graph"
	"github.com/matzehuels/certpaths/pkg/paths"
	"github.com/matzehuels/certpaths/pkg/pipeline"
)

// pathsCommand creates the paths command for prerequisite queries.
func (c *CLI) pathsCommand() *cobra.Command {
	var (
		recommended bool
		unlocks     bool
	)

	cmd := &cobra.Command{
		Use:   "paths [cert-id]",
		Short: "Show prerequisite chains or a study order",
		Long: `Show prerequisite chains or a study order.

With a certification id, list everything that leads up to it, nearest
first. --unlocks lists what it leads to instead. The vendor is taken from
the certification.

Without an id, print a study order for the selected vendor in which every
certification follows its prerequisites.

Only required links count unless --recommended is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return c.runStudyOrder(cmd.Context(), recommended)
			}
			return c.runPaths(cmd.Context(), args[0], recommended, unlocks)
		},
	}

	cmd.Flags().BoolVarP(&recommended, "recommended", "r", false, "follow recommended links too")
	cmd.Flags().BoolVar(&unlocks, "unlocks", false, "list what the certification leads to")
	return cmd
}

func (c *CLI) runPaths(ctx context.Context, id string, recommended, unlocks bool) error {
	cat, err := pipeline.Load(ctx, c.pipelineOptions().Source)
	if err != nil {
		return err
	}
	cert, ok := cat.Cert(id)
	if !ok {
		return errs.New(errs.ErrCodeNotFound, "no certification with id %q", id)
	}

	g, err := c.buildGraph(ctx, cat, cert.Vendor)
	if err != nil {
		return err
	}
	planner := paths.New(g)

	var ids []string
	title := "Prerequisites of " + cert.ID
	if unlocks {
		title = "Unlocked by " + cert.ID
		ids, err = planner.Unlocks(id, recommended)
	} else {
		ids, err = planner.Prerequisites(id, recommended)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, StyleTitle.Render(title))
	if len(ids) == 0 {
		printDetail("none")
		return nil
	}
	printCerts(g, ids)
	return nil
}

func (c *CLI) runStudyOrder(ctx context.Context, recommended bool) error {
	_, g, err := c.vendorGraph(ctx, "")
	if err != nil {
		return err
	}

	order, err := paths.New(g).Order(recommended)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, StyleTitle.Render("Study order for "+string(g.Vendor)))
	printCerts(g, order)
	return nil
}

func printCerts(g *graph.Graph, ids []string) {
	for _, id := range ids {
		if n, ok := g.Node(id); ok {
			printCert(n.Cert)
			continue
		}
		printCert(catalog.Cert{ID: id})
	}
}

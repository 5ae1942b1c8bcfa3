package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/certpaths/pkg/catalog"
	errs "github.com/matzehuels/certpaths/pkg/errors"
	"github.com/matzehuels/certpaths/pkg/pipeline"
)

// validateCommand creates the validate command for checking catalog imports.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [catalog]",
		Short: "Validate a catalog file",
		Long: `Validate a catalog file.

The catalog is decoded (JSON, YAML or TOML, by extension) and checked for
required fields, known levels, vendors and roles, unique ids and links that
point at existing certifications. The first violation is reported; nothing
is partially accepted.

Without an argument the --catalog flag, or the bundled catalog, is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := c.pipelineOptions().Source
			if len(args) == 1 {
				source = args[0]
			}
			return c.runValidate(cmd.Context(), source)
		},
	}
}

func (c *CLI) runValidate(ctx context.Context, source string) error {
	prog := newProgress(c.Logger)
	runner := pipeline.NewRunner(nil, nil, c.Logger)

	cat, err := runner.Load(ctx, source)
	if err != nil {
		if errs.IsSchemaError(err) {
			printError("Invalid catalog %s", sourceLabel(source))
			printDetail("%s", errs.UserMessage(err))
		}
		return err
	}
	prog.done(fmt.Sprintf("Validated %d certifications", len(cat.Certs)))

	printSuccess("Catalog is valid")
	printKeyValue("Source", sourceLabel(source))
	printKeyValue("Certs", fmt.Sprint(len(cat.Certs)))
	printKeyValue("Links", fmt.Sprint(len(cat.Links)))
	printKeyValue("Hash", cat.Hash()[:12])
	printNewline()

	for _, w := range cat.Warnings {
		printWarning("%s", w)
	}
	if len(cat.Warnings) > 0 {
		printNewline()
	}

	counts := cat.VendorCounts()
	for _, v := range catalog.Vendors {
		if n := counts[v]; n > 0 {
			printKeyValue(string(v), fmt.Sprintf("%d certifications", n))
		}
	}
	return nil
}

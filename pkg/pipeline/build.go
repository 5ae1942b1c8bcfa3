package pipeline

import (
	"github.com/matzehuels/certpaths/pkg/catalog"
	"github.com/matzehuels/certpaths/pkg/graph"
	"github.com/matzehuels/certpaths/pkg/layout"
)

// Build assembles the graph of one vendor: the vendor's certs, the links
// between them, and their grid positions.
func Build(cat *catalog.Catalog, vendor catalog.Vendor, p layout.Params) (*graph.Graph, error) {
	certs, links := cat.ForVendor(vendor)
	return graph.Assemble(vendor, certs, links, p)
}

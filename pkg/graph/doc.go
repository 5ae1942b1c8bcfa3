// Package graph assembles per-vendor certification graphs and defines their
// JSON wire format.
//
// # Architecture
//
// The package sits between the catalog and every rendering surface:
//
//   - pkg/catalog: validated certs and links
//   - pkg/layout: grid positions
//   - [Graph]: positioned [Node] values and styled [Edge] values (this package)
//   - pkg/filter, pkg/render/nodelink: consumers
//
// # Assembly
//
// [Assemble] runs the layout engine and converts each link to an edge:
//
//	certs, links := cat.ForVendor(catalog.VendorAWS)
//	g, err := graph.Assemble(catalog.VendorAWS, certs, links, layout.DefaultParams())
//
// Required links become heavy edges (solid, dark stroke); recommended links
// become light edges (dashed, grey stroke). Both end in a closed arrowhead
// in the stroke color. Links with a training title or URL carry a [Training]
// resource for the edge label.
//
// An edge whose endpoint is not among the nodes is an IntegrityFault (code
// INTEGRITY_FAULT in pkg/errors) wrapping [ErrDanglingEdge].
//
// # Serialization
//
//	{
//	  "vendor": "AWS",
//	  "nodes": [{"id": "aws-clf-c02", "position": {"x": 40, "y": 40}, "data": {...}}],
//	  "edges": [{"id": "l1", "source": "aws-clf-c02", "target": "aws-saa-c03", ...}]
//	}
//
// Use [MarshalGraph], [WriteGraph], [WriteGraphFile], [ReadGraph] and
// [ReadGraphFile].
package graph

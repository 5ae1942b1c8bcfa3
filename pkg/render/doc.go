// Package render turns certification graphs into files.
//
// # Overview
//
// The [nodelink] subpackage draws a vendor graph as a Graphviz diagram with
// every node pinned to its layout position. This package adds format
// conversion for the raster and print outputs:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (librsvg). When it is not
// installed they fail with code UNSUPPORTED.
//
// [nodelink]: github.com/matzehuels/certpaths/pkg/render/nodelink
package render

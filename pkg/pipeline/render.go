package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/certpaths/pkg/graph"
	"github.com/matzehuels/certpaths/pkg/render"
	"github.com/matzehuels/certpaths/pkg/render/nodelink"
)

// Render generates output artifacts for a (usually filtered) graph in the
// requested formats. SVG is rendered at most once and shared by the PDF and
// PNG conversions.
func Render(ctx context.Context, g *graph.Graph, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(g, nodelink.Options{
		Detailed:     opts.Detailed,
		HideTraining: opts.HideTraining,
	})

	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = nodelink.RenderSVG(ctx, dot)
		return svg, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			data, err = graph.MarshalGraph(g)
		case FormatSVG:
			data, err = svgOnce()
		case FormatPDF:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatPNG:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPNG(ctx, data, DefaultPNGScale)
			}
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

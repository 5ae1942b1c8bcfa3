package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/certpaths/pkg/catalog"
	errs "github.com/matzehuels/certpaths/pkg/errors"
	"github.com/matzehuels/certpaths/pkg/graph"
)

// Node box size in layout units (pixels). Positions from the layout engine
// are the top-left corner of this box.
const (
	NodeWidth  = 280
	NodeHeight = 96
)

// levelFill tints nodes by level.
var levelFill = map[catalog.Level]string{
	catalog.LevelFundamentals: "#ecfeff",
	catalog.LevelAssociate:    "#eff6ff",
	catalog.LevelProfessional: "#f5f3ff",
	catalog.LevelSpecialty:    "#fff7ed",
}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds level, domain and roles to node labels.
	// When false, only the title and exam code are shown.
	Detailed bool

	// HideTraining drops training labels from edges.
	HideTraining bool
}

// ToDOT converts a graph to Graphviz DOT with every node pinned at its
// layout position. Render it with the neato engine, as [RenderSVG] does.
//
// Edge colors, widths and dash patterns come from the graph's edge styles.
// Certification and training URLs are emitted only when they use http or
// https.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fillcolor=white, color=\"#cbd5e1\", fontname=\"Helvetica\", fontsize=14, fixedsize=true, width=%.2f, height=%.2f];\n",
		float64(NodeWidth)/72, float64(NodeHeight)/72)
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=11];\n")
	buf.WriteString("\n")

	for i := range g.Nodes {
		n := &g.Nodes[i]
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(nodeAttrs(n, opts), ", "))
	}

	buf.WriteString("\n")
	for i := range g.Edges {
		e := &g.Edges[i]
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(e.Source), quote(e.Target), strings.Join(edgeAttrs(e, opts), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *graph.Node, opts Options) []string {
	cx := n.Position.X + NodeWidth/2
	cy := n.Position.Y + NodeHeight/2
	attrs := []string{
		"label=" + quote(nodeLabel(n, opts.Detailed)),
		fmt.Sprintf("pos=\"%s,%s!\"", num(cx), num(-cy)),
	}
	if fill, ok := levelFill[n.Cert.Level]; ok {
		attrs = append(attrs, "fillcolor="+quote(fill))
	}
	if n.Cert.Description != "" {
		attrs = append(attrs, "tooltip="+quote(n.Cert.Description))
	}
	if errs.ValidateURL(n.Cert.URL) == nil {
		attrs = append(attrs, "URL="+quote(n.Cert.URL), "target=\"_blank\"")
	}
	return attrs
}

func nodeLabel(n *graph.Node, detailed bool) string {
	label := n.Label()
	if !detailed {
		return label
	}
	lines := []string{label, n.Cert.DisplayLevel()}
	if n.Cert.Domain != "" {
		lines = append(lines, n.Cert.Domain)
	}
	if len(n.Cert.Roles) > 0 {
		roles := make([]string, len(n.Cert.Roles))
		for i, r := range n.Cert.Roles {
			roles[i] = string(r)
		}
		lines = append(lines, strings.Join(roles, ", "))
	}
	return strings.Join(lines, "\n")
}

func edgeAttrs(e *graph.Edge, opts Options) []string {
	style := "solid"
	if e.Style.Dashed() {
		style = "dashed"
	}
	attrs := []string{
		"id=" + quote(e.ID),
		"color=" + quote(e.Style.Stroke),
		"penwidth=" + num(e.Style.StrokeWidth),
		"style=" + style,
		"arrowhead=normal",
	}
	if e.Marker.Color != "" {
		attrs = append(attrs, "fillcolor="+quote(e.Marker.Color))
	}
	if t := e.Training; t != nil && !opts.HideTraining {
		if t.Title != "" {
			attrs = append(attrs, "label="+quote(t.Title), "fontcolor="+quote(e.Style.Stroke))
		}
		if errs.ValidateURL(t.URL) == nil {
			attrs = append(attrs, "URL="+quote(t.URL), "target=\"_blank\"")
		}
	}
	return attrs
}

// quote renders s as a DOT double-quoted string. Newlines become the
// centered line break escape.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", "", "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders DOT with the neato engine so pinned positions hold.
// Returns the SVG bytes ready for display or further conversion with
// render.ToPDF or render.ToPNG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales to its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

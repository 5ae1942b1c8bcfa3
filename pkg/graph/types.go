package graph

import (
	"github.com/matzehuels/certpaths/pkg/catalog"
	"github.com/matzehuels/certpaths/pkg/layout"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Weight is the visual emphasis of an edge.
type Weight string

// Edge weights.
const (
	WeightHeavy Weight = "heavy" // required prerequisite
	WeightLight Weight = "light" // recommended path
)

// Edge colors and widths shared by every rendering surface.
const (
	ColorRequired    = "#0f172a"
	ColorRecommended = "#64748b"

	WidthRequired    = 2.6
	WidthRecommended = 1.6

	DashRecommended = "6 6"

	// MarkerArrowClosed is the filled arrowhead drawn at the target end.
	MarkerArrowClosed = "arrowclosed"
)

// =============================================================================
// Graph - Per-Vendor Certification Graph
// =============================================================================

// Graph is the drawable graph of one vendor: positioned nodes and styled
// edges, both in catalog order. A Graph is never modified after it is
// built; filtering produces a new Graph.
type Graph struct {
	Vendor catalog.Vendor `json:"vendor"`
	Nodes  []Node         `json:"nodes"`
	Edges  []Edge         `json:"edges"`

	index map[string]int
}

// New builds a Graph from already-positioned nodes and styled edges.
// It does not check edge endpoints; use Assemble for that.
func New(vendor catalog.Vendor, nodes []Node, edges []Edge) *Graph {
	g := &Graph{Vendor: vendor, Nodes: nodes, Edges: edges}
	g.reindex()
	return g
}

func (g *Graph) reindex() {
	g.index = make(map[string]int, len(g.Nodes))
	for i := range g.Nodes {
		g.index[g.Nodes[i].ID] = i
	}
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	if g.index == nil {
		for i := range g.Nodes {
			if g.Nodes[i].ID == id {
				return &g.Nodes[i], true
			}
		}
		return nil, false
	}
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return &g.Nodes[i], true
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// Certs returns the certification carried by each node, in node order.
func (g *Graph) Certs() []catalog.Cert {
	out := make([]catalog.Cert, len(g.Nodes))
	for i := range g.Nodes {
		out[i] = g.Nodes[i].Cert
	}
	return out
}

// =============================================================================
// Node - Positioned Certification
// =============================================================================

// Node is one certification at its grid position.
type Node struct {
	ID       string          `json:"id"`
	Position layout.Position `json:"position"`
	Cert     catalog.Cert    `json:"data"`
}

// Label returns the text drawn inside the node.
func (n *Node) Label() string {
	if n.Cert.Exam != "" {
		return n.Cert.Title + " (" + n.Cert.Exam + ")"
	}
	return n.Cert.Title
}

// =============================================================================
// Edge - Styled Link
// =============================================================================

// Edge is a drawable link between two nodes.
type Edge struct {
	ID       string           `json:"id"`
	Source   string           `json:"source"`
	Target   string           `json:"target"`
	Type     catalog.LinkType `json:"type"`
	Weight   Weight           `json:"weight"`
	Style    Style            `json:"style"`
	Marker   Marker           `json:"markerEnd"`
	Training *Training        `json:"training,omitempty"`
}

// Required reports whether the edge is a hard prerequisite.
func (e *Edge) Required() bool { return e.Type == catalog.LinkRequired }

// Style is the stroke used to draw an edge.
type Style struct {
	Stroke          string  `json:"stroke"`
	StrokeWidth     float64 `json:"strokeWidth"`
	StrokeDasharray string  `json:"strokeDasharray,omitempty"`
}

// Dashed reports whether the stroke has a dash pattern.
func (s Style) Dashed() bool { return s.StrokeDasharray != "" }

// Marker is the arrowhead at the target end of an edge.
type Marker struct {
	Kind  string `json:"type"`
	Color string `json:"color"`
}

// Training is a study resource attached to an edge.
type Training struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// StyleFor returns the weight, stroke and marker for a link type.
// Anything other than a required link is drawn as recommended.
func StyleFor(t catalog.LinkType) (Weight, Style, Marker) {
	if t == catalog.LinkRequired {
		return WeightHeavy,
			Style{Stroke: ColorRequired, StrokeWidth: WidthRequired},
			Marker{Kind: MarkerArrowClosed, Color: ColorRequired}
	}
	return WeightLight,
		Style{Stroke: ColorRecommended, StrokeWidth: WidthRecommended, StrokeDasharray: DashRecommended},
		Marker{Kind: MarkerArrowClosed, Color: ColorRecommended}
}

package filter

import (
	"strings"

	"github.com/matzehuels/certpaths/pkg/catalog"
	"github.com/matzehuels/certpaths/pkg/graph"
)

// All is the sentinel value that disables the level or domain filter.
const All = "All"

// State is the user's current filter selection.
type State struct {
	Vendor          catalog.Vendor `json:"vendor"`
	Level           string         `json:"level"`  // display level or All
	Domain          string         `json:"domain"` // domain or All
	Query           string         `json:"query"`
	ShowRecommended bool           `json:"showRecommended"`
}

// DefaultState returns the unfiltered view of a vendor.
func DefaultState(v catalog.Vendor) State {
	return State{Vendor: v, Level: All, Domain: All, ShowRecommended: true}
}

// Reset clears every filter but keeps the vendor.
func (s State) Reset() State { return DefaultState(s.Vendor) }

// WithVendor switches vendor. Level and domain values are vendor specific,
// so every other filter resets too.
func (s State) WithVendor(v catalog.Vendor) State { return DefaultState(v) }

// IsDefault reports whether no filter narrows the view.
func (s State) IsDefault() bool { return s == DefaultState(s.Vendor) }

// Matches reports whether a certification passes the level, domain and
// text filters. The vendor is not checked; graphs are already per vendor.
func Matches(c *catalog.Cert, s State) bool {
	if s.Level != All && s.Level != "" && c.DisplayLevel() != s.Level {
		return false
	}
	if s.Domain != All && s.Domain != "" && normDomain(c.Domain) != normDomain(s.Domain) {
		return false
	}
	return matchesText(c, s.Query)
}

// matchesText is a case-insensitive substring test over the searchable
// fields. A blank query matches everything.
func matchesText(c *catalog.Cert, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(haystack(c), q)
}

func haystack(c *catalog.Cert) string {
	var b strings.Builder
	for _, s := range []string{c.Title, c.Exam, string(c.Vendor), string(c.Level)} {
		b.WriteString(s)
		b.WriteByte(' ')
	}
	for i, r := range c.Roles {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(r))
	}
	b.WriteByte(' ')
	b.WriteString(c.Description)
	return strings.ToLower(b.String())
}

// Resolve returns the visible subgraph of g under s.
//
// Nodes keep graph order. An edge is visible only when both endpoints are
// visible and it is required or recommended edges are shown. Resolve never
// modifies g.
func Resolve(g *graph.Graph, s State) *graph.Graph {
	visible := make(map[string]struct{}, len(g.Nodes))
	nodes := make([]graph.Node, 0, len(g.Nodes))
	for i := range g.Nodes {
		if Matches(&g.Nodes[i].Cert, s) {
			visible[g.Nodes[i].ID] = struct{}{}
			nodes = append(nodes, g.Nodes[i])
		}
	}

	edges := make([]graph.Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if !s.ShowRecommended && !e.Required() {
			continue
		}
		_, src := visible[e.Source]
		_, dst := visible[e.Target]
		if src && dst {
			edges = append(edges, e)
		}
	}
	return graph.New(g.Vendor, nodes, edges)
}

func normDomain(d string) string { return strings.TrimSpace(d) }

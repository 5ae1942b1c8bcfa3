package graph

import (
	"errors"

	"github.com/matzehuels/certpaths/pkg/catalog"
	errs "github.com/matzehuels/certpaths/pkg/errors"
	"github.com/matzehuels/certpaths/pkg/layout"
)

// ErrDanglingEdge is wrapped by the IntegrityFault returned when a link
// endpoint is not among the assembled nodes.
var ErrDanglingEdge = errors.New("edge endpoint not among nodes")

// Assemble lays out the vendor's certifications and turns them and their
// links into a drawable graph.
//
// certs and links are expected to be the output of Catalog.ForVendor.
// Nodes follow cert order and edges follow link order. A link whose source
// or target is not among certs means the caller filtered inconsistently and
// yields an IntegrityFault; it is never dropped silently.
func Assemble(vendor catalog.Vendor, certs []catalog.Cert, links []catalog.Link, p layout.Params) (*Graph, error) {
	positions, err := layout.Compute(certs, p)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, len(certs))
	for i := range certs {
		nodes[i] = Node{ID: certs[i].ID, Position: positions[i], Cert: certs[i]}
	}
	g := New(vendor, nodes, nil)

	g.Edges = make([]Edge, 0, len(links))
	for _, l := range links {
		if _, ok := g.Node(l.SourceID); !ok {
			return nil, errs.Integrity(ErrDanglingEdge, "edge %q: source %q", l.ID, l.SourceID)
		}
		if _, ok := g.Node(l.TargetID); !ok {
			return nil, errs.Integrity(ErrDanglingEdge, "edge %q: target %q", l.ID, l.TargetID)
		}
		g.Edges = append(g.Edges, edgeFor(l))
	}
	return g, nil
}

func edgeFor(l catalog.Link) Edge {
	weight, style, marker := StyleFor(l.Type)
	e := Edge{
		ID:     l.ID,
		Source: l.SourceID,
		Target: l.TargetID,
		Type:   l.Type,
		Weight: weight,
		Style:  style,
		Marker: marker,
	}
	if l.TrainingTitle != "" || l.TrainingURL != "" {
		e.Training = &Training{Title: l.TrainingTitle, URL: l.TrainingURL}
	}
	return e
}

package paths

import (
	"errors"
	"slices"
	"strings"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"

	errs "github.com/matzehuels/certpaths/pkg/errors"
	"github.com/matzehuels/certpaths/pkg/graph"
)

// ErrCycle is wrapped by the error Order returns when links form a cycle.
var ErrCycle = errors.New("links form a cycle")

// Planner answers prerequisite questions over one vendor graph. Required
// links and recommended links are kept in separate directed graphs so each
// query can choose whether soft suggestions count.
type Planner struct {
	ids   map[string]int64
	names []string

	required *simple.DirectedGraph
	all      *simple.DirectedGraph

	// Self links are cycles that simple.DirectedGraph cannot store.
	selfRequired []string
	selfAll      []string
}

// New indexes g. Node ids become gonum ids in graph order.
func New(g *graph.Graph) *Planner {
	p := &Planner{
		ids:      make(map[string]int64, len(g.Nodes)),
		names:    make([]string, len(g.Nodes)),
		required: simple.NewDirectedGraph(),
		all:      simple.NewDirectedGraph(),
	}
	for i, n := range g.Nodes {
		id := int64(i)
		p.ids[n.ID] = id
		p.names[i] = n.ID
		p.required.AddNode(simple.Node(id))
		p.all.AddNode(simple.Node(id))
	}

	for _, e := range g.Edges {
		from, okFrom := p.ids[e.Source]
		to, okTo := p.ids[e.Target]
		if !okFrom || !okTo {
			continue
		}
		if from == to {
			p.selfAll = append(p.selfAll, e.Source)
			if e.Required() {
				p.selfRequired = append(p.selfRequired, e.Source)
			}
			continue
		}
		setEdge(p.all, from, to)
		if e.Required() {
			setEdge(p.required, from, to)
		}
	}
	return p
}

func setEdge(g *simple.DirectedGraph, from, to int64) {
	if !g.HasEdgeFromTo(from, to) {
		g.SetEdge(g.NewEdge(g.Node(from), g.Node(to)))
	}
}

func (p *Planner) pick(includeRecommended bool) (*simple.DirectedGraph, []string) {
	if includeRecommended {
		return p.all, p.selfAll
	}
	return p.required, p.selfRequired
}

func (p *Planner) lookup(id string) (int64, error) {
	n, ok := p.ids[id]
	if !ok {
		return 0, errs.New(errs.ErrCodeNotFound, "certification %q is not in this graph", id)
	}
	return n, nil
}

// Prerequisites returns every certification that leads to id, nearest
// first. Ties keep graph order.
func (p *Planner) Prerequisites(id string, includeRecommended bool) ([]string, error) {
	start, err := p.lookup(id)
	if err != nil {
		return nil, err
	}
	g, _ := p.pick(includeRecommended)

	depth := map[int64]int{start: 0}
	queue := []int64{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		preds := g.To(cur)
		for preds.Next() {
			pid := preds.Node().ID()
			if _, seen := depth[pid]; !seen {
				depth[pid] = depth[cur] + 1
				queue = append(queue, pid)
			}
		}
	}
	delete(depth, start)
	return p.byDepth(depth), nil
}

// Unlocks returns every certification that id leads to, nearest first.
func (p *Planner) Unlocks(id string, includeRecommended bool) ([]string, error) {
	start, err := p.lookup(id)
	if err != nil {
		return nil, err
	}
	g, _ := p.pick(includeRecommended)

	depth := make(map[int64]int)
	bf := traverse.BreadthFirst{}
	bf.Walk(g, g.Node(start), func(n gonum.Node, d int) bool {
		if n.ID() != start {
			depth[n.ID()] = d
		}
		return false
	})
	return p.byDepth(depth), nil
}

func (p *Planner) byDepth(depth map[int64]int) []string {
	ids := make([]int64, 0, len(depth))
	for id := range depth {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b int64) int {
		if depth[a] != depth[b] {
			return depth[a] - depth[b]
		}
		return int(a - b)
	})
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = p.names[id]
	}
	return out
}

// Order returns a learning order: every certification appears after all
// of its prerequisites. The order is deterministic; ties use id order.
// When links form a cycle the error wraps ErrCycle and names its members.
func (p *Planner) Order(includeRecommended bool) ([]string, error) {
	g, self := p.pick(includeRecommended)
	if len(self) > 0 {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, ErrCycle, "self link on %s", strings.Join(self, ", "))
	}

	sorted, err := topo.SortStabilized(g, func(nodes []gonum.Node) {
		slices.SortFunc(nodes, func(a, b gonum.Node) int {
			return strings.Compare(p.names[a.ID()], p.names[b.ID()])
		})
	})
	if err != nil {
		var u topo.Unorderable
		if errors.As(err, &u) {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, ErrCycle, "%s", p.describe(u))
		}
		return nil, err
	}

	out := make([]string, len(sorted))
	for i, n := range sorted {
		out[i] = p.names[n.ID()]
	}
	return out, nil
}

func (p *Planner) describe(u topo.Unorderable) string {
	groups := make([]string, 0, len(u))
	for _, scc := range u {
		members := make([]string, len(scc))
		for i, n := range scc {
			members[i] = p.names[n.ID()]
		}
		slices.Sort(members)
		groups = append(groups, "{"+strings.Join(members, ", ")+"}")
	}
	slices.Sort(groups)
	return "cycle among " + strings.Join(groups, " ")
}

// Package paths answers learning-path questions about a vendor graph:
// what must be earned before a certification, what it unlocks, and in which
// order a whole track can be taken.
//
// Queries take an includeRecommended flag. With it unset only required
// links count, which matches a vendor's formal prerequisites.
//
//	p := paths.New(g)
//	before, _ := p.Prerequisites("az-305", false) // [az-104]
//	order, err := p.Order(true)
package paths

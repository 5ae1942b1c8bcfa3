// Package filter decides which nodes and edges of a vendor graph are
// visible under the user's current selection.
//
// A [State] holds the level, domain, free-text query and whether
// recommended edges are shown. [Resolve] is a pure function of a graph and
// a state, so a surface can call it on every keystroke:
//
//	state := filter.DefaultState(catalog.VendorAzure)
//	state.Level = "Associate"
//	visible := filter.Resolve(g, state)
//
// Edges are visible only when both endpoints are visible, so a filtered
// view never shows an edge hanging off a hidden node.
//
// [Options] lists the level and domain values a vendor offers, and
// [Suggest] and [Count] back a search box. [Memo] caches resolved views per
// state when the same selections recur.
package filter

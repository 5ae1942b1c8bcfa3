// Package nodelink renders certification graphs as node-link diagrams.
//
// # Overview
//
// Nodes are boxes pinned to the grid computed by pkg/layout: one column per
// level, one row per slot. Required links are solid dark arrows and
// recommended links dashed grey ones. Training resources appear as edge
// labels.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// [ToDOT] emits neato-compatible DOT: every node carries pos="x,-y!" with
// inputscale=72, so one layout unit is one point and Graphviz never moves
// a node. The y coordinate is negated because Graphviz's y axis points up.
// The DOT can be saved and processed with external Graphviz tools:
//
//	neato -n2 -Tsvg graph.dot > graph.svg
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink

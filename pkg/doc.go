// Package pkg provides the core libraries for certpaths, a visualizer for
// IT certification catalogs.
//
// # Overview
//
// certpaths lays out one vendor's certifications on a level-by-domain grid
// and draws the prerequisite links between them. The pkg directory is
// organized into these areas:
//
//  1. [catalog] - Import decoding and validation (JSON, YAML, TOML)
//  2. [layout] - Grid coordinates for certification nodes
//  3. [graph] - Vendor graph assembly and serialization
//  4. [filter] - Visibility resolution for level, domain and text filters
//  5. [paths] - Prerequisite chains and study order
//  6. [render] - Graphviz DOT, SVG, PDF and PNG output
//  7. [pipeline] - Orchestration (load → build → resolve → render)
//  8. [cache], [config], [watch], [httputil], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	catalog file, URL or bundled data
//	         ↓
//	    [catalog] package (decode + validate)
//	         ↓
//	    [graph] package (assemble with [layout] positions)
//	         ↓
//	    [filter] package (visible subgraph)
//	         ↓
//	    [render] package (DOT/SVG/PDF/PNG/JSON)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/certpaths/pkg/catalog"
//	    "github.com/matzehuels/certpaths/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Vendor:  catalog.VendorAWS,
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// [catalog]: github.com/matzehuels/certpaths/pkg/catalog
// [layout]: github.com/matzehuels/certpaths/pkg/layout
// [graph]: github.com/matzehuels/certpaths/pkg/graph
// [filter]: github.com/matzehuels/certpaths/pkg/filter
// [paths]: github.com/matzehuels/certpaths/pkg/paths
// [render]: github.com/matzehuels/certpaths/pkg/render
// [pipeline]: github.com/matzehuels/certpaths/pkg/pipeline
// [cache]: github.com/matzehuels/certpaths/pkg/cache
// [config]: github.com/matzehuels/certpaths/pkg/config
// [watch]: github.com/matzehuels/certpaths/pkg/watch
// [httputil]: github.com/matzehuels/certpaths/pkg/httputil
// [observability]: github.com/matzehuels/certpaths/pkg/observability
package pkg

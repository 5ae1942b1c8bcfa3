// Package pipeline provides the catalog visualization pipeline for certpaths.
//
// This package implements the complete load → build → resolve → render
// pipeline used by every CLI command. By centralizing this logic, commands
// share validation, caching and logging.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: decode and validate a catalog file (or the bundled catalog)
//  2. Build: lay out and assemble the graph of one vendor
//  3. Resolve: apply the filter state to get the visible subgraph
//  4. Render: generate output in various formats (SVG, DOT, JSON, PDF, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "catalog.yaml",
//	    Vendor:  catalog.VendorAzure,
//	    Level:   "Associate",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/certpaths/pkg/cache"
	"github.com/matzehuels/certpaths/pkg/catalog"
	errs "github.com/matzehuels/certpaths/pkg/errors"
	"github.com/matzehuels/certpaths/pkg/filter"
	"github.com/matzehuels/certpaths/pkg/graph"
	"github.com/matzehuels/certpaths/pkg/layout"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultVendor is shown when no vendor is selected.
const DefaultVendor = catalog.VendorAWS

// DefaultPNGScale is the resolution multiplier for PNG output.
const DefaultPNGScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
	FormatPDF:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Load options. Source is a catalog file path or http(s) URL; empty
	// means the bundled catalog. Catalog, when set, skips loading entirely.
	Source  string           `json:"source,omitempty"`
	Catalog *catalog.Catalog `json:"-"`

	// Build options
	Vendor catalog.Vendor `json:"vendor,omitempty"`
	Layout layout.Params  `json:"layout"`

	// Filter options
	Level           string `json:"level,omitempty"`
	Domain          string `json:"domain,omitempty"`
	Query           string `json:"query,omitempty"`
	HideRecommended bool   `json:"hide_recommended,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Detailed     bool     `json:"detailed,omitempty"`
	HideTraining bool     `json:"hide_training,omitempty"`
	Refresh      bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Catalog is the validated catalog.
	Catalog *catalog.Catalog

	// Graph is the full vendor graph.
	Graph *graph.Graph

	// Visible is the filtered subgraph that was rendered.
	Visible *graph.Graph

	// Choices lists the filter values the vendor offers.
	Choices filter.Choices

	// GraphHash is the content hash of the visible graph.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CertCount    int
	LinkCount    int
	NodeCount    int
	EdgeCount    int
	VisibleNodes int
	VisibleEdges int
	LoadTime     time.Duration
	BuildTime    time.Duration
	ResolveTime  time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the vendor graph came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, dot, json, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVendor checks that a vendor is known.
func ValidateVendor(v catalog.Vendor) error {
	if !v.Valid() {
		return errs.New(errs.ErrCodeInvalidInput, "unknown vendor %q", v)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetBuildDefaults sets default vendor and layout parameters.
func (o *Options) SetBuildDefaults() {
	if o.Vendor == "" {
		o.Vendor = DefaultVendor
	}
	if o.Layout == (layout.Params{}) {
		o.Layout = layout.DefaultParams()
	}
	o.setLogger()
}

// ValidateForBuild validates and sets defaults for graph assembly.
func (o *Options) ValidateForBuild() error {
	o.SetBuildDefaults()
	if err := ValidateVendor(o.Vendor); err != nil {
		return err
	}
	return o.Layout.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// FilterState returns the filter state described by the options.
func (o *Options) FilterState() filter.State {
	s := filter.DefaultState(o.Vendor)
	if o.Level != "" {
		s.Level = o.Level
	}
	if o.Domain != "" {
		s.Domain = o.Domain
	}
	s.Query = o.Query
	s.ShowRecommended = !o.HideRecommended
	return s
}

// GraphKeyOpts returns cache key options for graph assembly.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		XGap:    o.Layout.XGap,
		YGap:    o.Layout.YGap,
		XOffset: o.Layout.XOffset,
		YOffset: o.Layout.YOffset,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:       format,
		Detailed:     o.Detailed,
		HideTraining: o.HideTraining,
	}
}

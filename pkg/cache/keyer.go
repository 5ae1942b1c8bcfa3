package cache

import "fmt"

// Keyer derives cache keys for pipeline stages.
type Keyer interface {
	// GraphKey identifies an assembled vendor graph.
	GraphKey(catalogHash, vendor string, opts GraphKeyOpts) string

	// ArtifactKey identifies a rendered artifact of a filtered graph.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// GraphKeyOpts are the layout parameters that shape a graph.
type GraphKeyOpts struct {
	XGap    float64 `json:"xgap"`
	YGap    float64 `json:"ygap"`
	XOffset float64 `json:"xoffset"`
	YOffset float64 `json:"yoffset"`
}

// ArtifactKeyOpts are the render options that shape an artifact.
type ArtifactKeyOpts struct {
	Format       string `json:"format"`
	Detailed     bool   `json:"detailed,omitempty"`
	HideTraining bool   `json:"hide_training,omitempty"`
}

// DefaultKeyer is the standard key scheme: "<stage>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(catalogHash, vendor string, opts GraphKeyOpts) string {
	return hashKey("graph", catalogHash, vendor, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), graphHash, opts)
}

var _ Keyer = DefaultKeyer{}

package layout

import (
	"errors"
	"fmt"

	"github.com/matzehuels/certpaths/pkg/catalog"
	errs "github.com/matzehuels/certpaths/pkg/errors"
)

// ErrUnrankedLevel is returned when a certification's level is not one of
// the four ranked levels, which would otherwise place it at a negative
// column.
var ErrUnrankedLevel = errors.New("level has no column")

// Default grid spacing in pixels.
const (
	DefaultXGap    = 400
	DefaultYGap    = 160
	DefaultXOffset = 40
	DefaultYOffset = 40
)

// Params controls the grid geometry.
type Params struct {
	XGap    float64 `json:"xGap" koanf:"xgap"`       // horizontal distance between level columns
	YGap    float64 `json:"yGap" koanf:"ygap"`       // vertical distance between slots in a column
	XOffset float64 `json:"xOffset" koanf:"xoffset"` // left margin
	YOffset float64 `json:"yOffset" koanf:"yoffset"` // top margin
}

// DefaultParams returns the standard grid: 400px columns, 160px rows and a
// 40px margin.
func DefaultParams() Params {
	return Params{
		XGap:    DefaultXGap,
		YGap:    DefaultYGap,
		XOffset: DefaultXOffset,
		YOffset: DefaultYOffset,
	}
}

// Validate rejects non-positive gaps and negative offsets.
func (p Params) Validate() error {
	if p.XGap <= 0 || p.YGap <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "layout gaps must be positive (xgap=%g, ygap=%g)", p.XGap, p.YGap)
	}
	if p.XOffset < 0 || p.YOffset < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "layout offsets must not be negative (xoffset=%g, yoffset=%g)", p.XOffset, p.YOffset)
	}
	return nil
}

// Position is the top-left anchor of a node in pixels.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Compute assigns every certification a grid position. Columns follow the
// level's rank; rows follow input order within each (vendor, level) slot,
// so the first cert of a level sits at YOffset and each following one
// YGap below it.
//
// The result has one position per input cert, in the same order. Compute
// is deterministic and does not modify certs.
func Compute(certs []catalog.Cert, p Params) ([]Position, error) {
	slots := make(map[slotKey]int)
	out := make([]Position, len(certs))

	for i := range certs {
		c := &certs[i]
		col := c.Level.Index()
		if col < 0 {
			return nil, fmt.Errorf("cert %q: %w: %q", c.ID, ErrUnrankedLevel, c.Level)
		}

		key := slotKey{vendor: c.Vendor, level: c.Level}
		row := slots[key]
		slots[key] = row + 1

		out[i] = Position{
			X: p.XOffset + float64(col)*p.XGap,
			Y: p.YOffset + float64(row)*p.YGap,
		}
	}
	return out, nil
}

// Bounds returns the width and height of the smallest box holding every
// position plus a trailing margin equal to the offsets.
func Bounds(positions []Position, p Params) (width, height float64) {
	for _, pos := range positions {
		width = max(width, pos.X)
		height = max(height, pos.Y)
	}
	return width + p.XGap/2 + p.XOffset, height + p.YGap/2 + p.YOffset
}

type slotKey struct {
	vendor catalog.Vendor
	level  catalog.Level
}

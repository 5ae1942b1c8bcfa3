// Package layout places certifications on a fixed grid.
//
// The x axis is the certification level: Fundamentals, Associate,
// Professional-Expert and Specialty occupy columns 0 to 3. The y axis is a
// per-(vendor, level) counter, so certifications stack downward in the
// order they appear in the catalog.
//
//	positions, err := layout.Compute(certs, layout.DefaultParams())
//
// With the default parameters the first Fundamentals cert sits at (40, 40)
// and the first Associate cert at (440, 40).
package layout

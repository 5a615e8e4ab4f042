// Package plate turns unified artwork into the final 2D stencil plate:
// a margin rectangle with the (optionally clearance-offset) artwork cut
// out, islands reconnected by sprue channels, and alignment marks
// subtracted at the corners. Every stage returns a new region; nothing
// is mutated in place.
package plate

import (
	"fmt"

	"github.com/chazu/stencil/pkg/geom2d"
)

// BuildConfig holds the Plate Builder parameters.
type BuildConfig struct {
	MarginMm    float64 `json:"marginMm"`    // plate margin around the artwork bounding box, >= 0
	ClearanceMm float64 `json:"clearanceMm"` // outward offset applied to artwork before cutting, >= 0
}

// Validate checks the parameter ranges.
func (c BuildConfig) Validate() error {
	if c.MarginMm < 0 {
		return fmt.Errorf("plate margin %.3f must be >= 0: %w", c.MarginMm, geom2d.ErrInvalidParameter)
	}
	if c.ClearanceMm < 0 {
		return fmt.Errorf("clearance %.3f must be >= 0: %w", c.ClearanceMm, geom2d.ErrInvalidParameter)
	}
	return nil
}

// BuildReport describes what the builder did, including the lossy parts.
type BuildReport struct {
	ArtworkArea     float64       `json:"artworkArea"`     // unified artwork area after clearance offset
	PlateArea       float64       `json:"plateArea"`       // area of the returned plate
	PlateBounds     geom2d.Bounds `json:"plateBounds"`     // outer rectangle
	HoleCount       int           `json:"holeCount"`       // cutout holes in the returned plate
	DiscardedPieces int           `json:"discardedPieces"` // disjoint fragments dropped by the largest-piece policy
	DiscardedArea   float64       `json:"discardedArea"`   // total area of those fragments
	Repaired        bool          `json:"repaired"`        // whether a post-difference repair was needed
}

// Build constructs the base cutout plate: the artwork bounding box
// expanded by the margin, minus the clearance-offset artwork. If the
// difference splits the plate into several disjoint solids, the largest
// is kept and the rest reported in the BuildReport — a deliberate lossy
// policy, never a silent drop.
func Build(art geom2d.RegionSet, cfg BuildConfig) (geom2d.Region, BuildReport, error) {
	var report BuildReport
	if err := cfg.Validate(); err != nil {
		return geom2d.Region{}, report, err
	}
	if err := art.Validate(); err != nil {
		return geom2d.Region{}, report, fmt.Errorf("artwork: %w", err)
	}

	bounds := art.Bounds().Expand(cfg.MarginMm)
	report.PlateBounds = bounds
	rect := geom2d.Region{Outer: geom2d.Ring{
		bounds.Min,
		{X: bounds.Max.X, Y: bounds.Min.Y},
		bounds.Max,
		{X: bounds.Min.X, Y: bounds.Max.Y},
	}}

	cut := art
	if cfg.ClearanceMm > 0 {
		var grown geom2d.RegionSet
		for i, g := range art {
			offs, err := geom2d.Offset(g, cfg.ClearanceMm)
			if err != nil {
				return geom2d.Region{}, report, fmt.Errorf("clearance offset of artwork region %d: %w", i, err)
			}
			grown = append(grown, offs...)
		}
		cut = grown
	}
	report.ArtworkArea = cut.Area()

	pieces, err := geom2d.Difference(rect, cut)
	if err != nil {
		return geom2d.Region{}, report, fmt.Errorf("plate difference: %w", err)
	}
	if len(pieces) == 0 {
		return geom2d.Region{}, report, fmt.Errorf("artwork covers the whole plate: %w", geom2d.ErrInvalidInput)
	}

	result, discarded := pieces.Largest()
	report.DiscardedPieces = len(pieces) - 1
	report.DiscardedArea = discarded

	if err := result.Validate(); err != nil {
		repaired, rerr := geom2d.Repair(result)
		if rerr != nil {
			return geom2d.Region{}, report, fmt.Errorf("plate repair: %w", rerr)
		}
		result = repaired
		report.Repaired = true
	}

	report.PlateArea = result.Area()
	report.HoleCount = result.HoleCount()
	return result, report, nil
}

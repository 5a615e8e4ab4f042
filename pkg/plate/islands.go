package plate

import (
	"fmt"

	"github.com/chazu/stencil/pkg/geom2d"
)

// SprueConfig holds the Island Router parameters.
type SprueConfig struct {
	WidthMm     float64 `json:"widthMm"`     // channel width, > 0
	MaxLengthMm float64 `json:"maxLengthMm"` // longest allowed centroid-to-boundary distance, > 0
	MaxCount    int     `json:"maxCount"`    // islands processed at most, >= 0
}

// Validate checks the parameter ranges.
func (c SprueConfig) Validate() error {
	if c.WidthMm <= 0 {
		return fmt.Errorf("sprue width %.3f must be > 0: %w", c.WidthMm, geom2d.ErrInvalidParameter)
	}
	if c.MaxLengthMm <= 0 {
		return fmt.Errorf("max sprue length %.3f must be > 0: %w", c.MaxLengthMm, geom2d.ErrInvalidParameter)
	}
	if c.MaxCount < 0 {
		return fmt.Errorf("max sprue count %d must be >= 0: %w", c.MaxCount, geom2d.ErrInvalidParameter)
	}
	return nil
}

// RouteReport describes the routing outcome. A plate is only
// best-effort single-component after routing: islands can stay
// disconnected because of the count budget or the length limit, and
// HolesAfter is how callers detect that.
type RouteReport struct {
	HolesBefore       int     `json:"holesBefore"`
	HolesAfter        int     `json:"holesAfter"`
	SpruesPlaced      int     `json:"spruesPlaced"`
	SkippedTooFar     int     `json:"skippedTooFar"`     // centroid farther than MaxLengthMm from the boundary
	SkippedOverBudget int     `json:"skippedOverBudget"` // islands beyond MaxCount, never processed
	SkippedDegenerate int     `json:"skippedDegenerate"` // centroid already on the boundary
	DiscardedArea     float64 `json:"discardedArea"`     // largest-piece policy fallout, normally zero
}

// Route detects islands (the plate's hole rings, each by definition a
// void disconnected from the exterior) and carves rectangular sprue
// channels from island centroids to the nearest point on the plate's
// outer boundary. Sprues are unioned and subtracted in one batched
// difference so the result does not depend on processing order.
func Route(p geom2d.Region, cfg SprueConfig) (geom2d.Region, RouteReport, error) {
	var report RouteReport
	if err := cfg.Validate(); err != nil {
		return geom2d.Region{}, report, err
	}
	if err := p.Validate(); err != nil {
		return geom2d.Region{}, report, fmt.Errorf("plate: %w", err)
	}

	report.HolesBefore = p.HoleCount()
	report.HolesAfter = report.HolesBefore
	if report.HolesBefore == 0 {
		return p, report, nil
	}

	var sprues []geom2d.Region
	for i, hole := range p.Holes {
		if i >= cfg.MaxCount {
			report.SkippedOverBudget = len(p.Holes) - i
			break
		}
		centroid := hole.Centroid()
		target, dist := p.Outer.NearestBoundaryPoint(centroid)
		if dist == 0 {
			report.SkippedDegenerate++
			continue
		}
		if dist > cfg.MaxLengthMm {
			report.SkippedTooFar++
			continue
		}
		sprues = append(sprues, sprueRect(centroid, target, cfg.WidthMm))
	}
	if len(sprues) == 0 {
		return p, report, nil
	}

	carve, err := geom2d.Union(sprues...)
	if err != nil {
		return geom2d.Region{}, report, fmt.Errorf("sprue union: %w", err)
	}
	pieces, err := geom2d.Difference(p, carve)
	if err != nil {
		return geom2d.Region{}, report, fmt.Errorf("sprue difference: %w", err)
	}
	if len(pieces) == 0 {
		return geom2d.Region{}, report, fmt.Errorf("sprues consumed the whole plate: %w", geom2d.ErrInvalidInput)
	}
	routed, discarded := pieces.Largest()
	report.DiscardedArea = discarded
	report.SpruesPlaced = len(sprues)
	report.HolesAfter = routed.HoleCount()
	return routed, report, nil
}

// sprueRect builds the rectangular channel from a to b: the direction
// vector is normalized and the width applied perpendicular to it at
// both endpoints.
func sprueRect(a, b geom2d.Point, width float64) geom2d.Region {
	dir := b.Sub(a)
	dir = dir.Scale(1 / dir.Length())
	perp := geom2d.Point{X: -dir.Y, Y: dir.X}.Scale(width / 2)
	quad := geom2d.Ring{
		a.Sub(perp),
		b.Sub(perp),
		b.Add(perp),
		a.Add(perp),
	}
	if !quad.IsCCW() {
		quad = quad.Reversed()
	}
	return geom2d.Region{Outer: quad}
}

// Package pipeline runs the full stencil generation sequence: unified
// artwork in, final plate region and watertight prism mesh out. Each
// stage is an explicit call taking the previous stage's output; the
// pipeline holds no state between runs, so concurrent runs on different
// artworks are safe.
package pipeline

import (
	"fmt"
	"log"

	"github.com/chazu/stencil/pkg/extrude"
	"github.com/chazu/stencil/pkg/geom2d"
	"github.com/chazu/stencil/pkg/mesh"
	"github.com/chazu/stencil/pkg/plate"
	"github.com/chazu/stencil/pkg/preview"
)

func errThickness(v float64) error {
	return fmt.Errorf("plate thickness %.3f must be > 0: %w", v, geom2d.ErrInvalidParameter)
}

// MeshInfo is the read-only 3D summary surfaced to callers.
type MeshInfo struct {
	Vertices    int        `json:"vertices"`
	Faces       int        `json:"faces"`
	Watertight  bool       `json:"watertight"`
	Volume      float64    `json:"volume"`
	SurfaceArea float64    `json:"surfaceArea"`
	BoundsMin   [3]float64 `json:"boundsMin"`
	BoundsMax   [3]float64 `json:"boundsMax"`
}

// Result bundles the final artifacts and the per-stage metadata. Mesh
// validation findings land in Issues; a flagged mesh is still returned
// so callers can inspect it before deciding whether to export.
type Result struct {
	Plate   geom2d.Region `json:"plate"`
	Mesh    *mesh.Mesh    `json:"mesh"`
	Preview *mesh.Mesh    `json:"preview,omitempty"`

	Build    plate.BuildReport `json:"build"`
	Route    plate.RouteReport `json:"route"`
	Marks    plate.MarkReport  `json:"marks"`
	MeshInfo MeshInfo          `json:"meshInfo"`
	Issues   []mesh.Issue      `json:"issues,omitempty"`
}

// Run executes the whole pipeline. Hard errors are parameter and
// contract violations; watertightness problems are reported in
// Result.Issues rather than raised.
func Run(art geom2d.RegionSet, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := art.Validate(); err != nil {
		return nil, fmt.Errorf("artwork: %w", err)
	}

	// Re-union defensively so overlapping input shapes become disjoint
	// regions. For already-disjoint artwork this is a no-op.
	unified, err := geom2d.Union(art...)
	if err != nil {
		return nil, fmt.Errorf("artwork union: %w", err)
	}

	result := &Result{}

	p, buildReport, err := plate.Build(unified, cfg.buildConfig())
	if err != nil {
		return nil, err
	}
	result.Build = buildReport
	if buildReport.DiscardedPieces > 0 {
		log.Printf("plate build discarded %d fragment(s) totaling %.3f mm²",
			buildReport.DiscardedPieces, buildReport.DiscardedArea)
	}

	if cfg.Sprues.Enabled {
		routed, routeReport, err := plate.Route(p, cfg.sprueConfig())
		if err != nil {
			return nil, err
		}
		p = routed
		result.Route = routeReport
		if routeReport.HolesAfter > 0 {
			log.Printf("routing left %d island(s) disconnected (%d too far, %d over budget)",
				routeReport.HolesAfter, routeReport.SkippedTooFar, routeReport.SkippedOverBudget)
		}
	} else {
		result.Route = plate.RouteReport{HolesBefore: p.HoleCount(), HolesAfter: p.HoleCount()}
	}

	if cfg.Marks.Enabled {
		marked, markReport, err := plate.PlaceMarks(p, cfg.markConfig())
		if err != nil {
			return nil, err
		}
		p = marked
		result.Marks = markReport
	}
	result.Plate = p

	m, err := extrude.Extrude(p, cfg.Plate.ThicknessMm)
	if err != nil {
		return nil, err
	}
	valid, issues := mesh.Validate(m)
	if !valid {
		mesh.Repair(m)
		valid, issues = mesh.Validate(m)
	}
	if !valid {
		log.Printf("mesh flagged with %d issue(s) after repair", len(issues))
	}
	result.Mesh = m
	result.Issues = issues
	result.MeshInfo = meshInfo(m)

	if cfg.Preview.Enabled {
		pm, err := preview.Mesh(p, cfg.Plate.ThicknessMm, cfg.Preview.Cells)
		if err != nil {
			return nil, err
		}
		result.Preview = pm
	}
	return result, nil
}

func meshInfo(m *mesh.Mesh) MeshInfo {
	min, max := m.BoundingBox()
	return MeshInfo{
		Vertices:    m.VertexCount(),
		Faces:       m.TriangleCount(),
		Watertight:  m.IsWatertight(),
		Volume:      m.Volume(),
		SurfaceArea: m.SurfaceArea(),
		BoundsMin:   min,
		BoundsMax:   max,
	}
}

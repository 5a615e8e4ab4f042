package plate

import (
	"errors"
	"testing"

	"github.com/chazu/stencil/pkg/geom2d"
)

// plateWithHoles builds a 40x40 plate with square holes centered at the
// given points.
func plateWithHoles(holeSide float64, centers ...geom2d.Point) geom2d.Region {
	p := geom2d.Region{Outer: geom2d.Ring{
		{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 40}, {X: 0, Y: 40},
	}}
	h := holeSide / 2
	for _, c := range centers {
		hole := geom2d.Ring{
			{X: c.X - h, Y: c.Y - h},
			{X: c.X + h, Y: c.Y - h},
			{X: c.X + h, Y: c.Y + h},
			{X: c.X - h, Y: c.Y + h},
		}
		p.Holes = append(p.Holes, hole.Reversed())
	}
	return p
}

func TestRouteConnectsIsland(t *testing.T) {
	// Island centroid 5mm from the left boundary, limit 10mm: one sprue
	// opens the hole to the exterior.
	p := plateWithHoles(4, geom2d.Point{X: 5, Y: 20})
	routed, report, err := Route(p, SprueConfig{WidthMm: 2, MaxLengthMm: 10, MaxCount: 1})
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if report.SpruesPlaced != 1 {
		t.Errorf("sprues placed = %d, want 1", report.SpruesPlaced)
	}
	if report.HolesBefore != 1 || report.HolesAfter != 0 {
		t.Errorf("holes %d -> %d, want 1 -> 0", report.HolesBefore, report.HolesAfter)
	}
	if routed.HoleCount() != 0 {
		t.Errorf("routed plate still has %d holes", routed.HoleCount())
	}
	// The channel removed plate material: 5mm run, minus the part
	// crossing the hole itself.
	if routed.Area() >= p.Area() {
		t.Errorf("routed area %f should be below original %f", routed.Area(), p.Area())
	}
}

func TestRouteIslandTooFar(t *testing.T) {
	// Same island, but the 3mm limit is under the 5mm distance: the
	// island stays disconnected.
	p := plateWithHoles(4, geom2d.Point{X: 5, Y: 20})
	routed, report, err := Route(p, SprueConfig{WidthMm: 2, MaxLengthMm: 3, MaxCount: 1})
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if report.SpruesPlaced != 0 || report.SkippedTooFar != 1 {
		t.Errorf("report = %+v, want 0 placed / 1 too far", report)
	}
	if routed.HoleCount() != 1 {
		t.Errorf("hole count = %d, want 1", routed.HoleCount())
	}
}

func TestRouteBudget(t *testing.T) {
	// Two islands, budget one: the first is processed, the second never
	// looked at.
	p := plateWithHoles(4, geom2d.Point{X: 5, Y: 10}, geom2d.Point{X: 5, Y: 30})
	routed, report, err := Route(p, SprueConfig{WidthMm: 2, MaxLengthMm: 50, MaxCount: 1})
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if report.SpruesPlaced != 1 || report.SkippedOverBudget != 1 {
		t.Errorf("report = %+v, want 1 placed / 1 over budget", report)
	}
	if routed.HoleCount() != 1 {
		t.Errorf("hole count = %d, want 1", routed.HoleCount())
	}
}

func TestRouteZeroBudget(t *testing.T) {
	p := plateWithHoles(4, geom2d.Point{X: 5, Y: 20})
	routed, report, err := Route(p, SprueConfig{WidthMm: 2, MaxLengthMm: 50, MaxCount: 0})
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if report.SpruesPlaced != 0 || report.SkippedOverBudget != 1 {
		t.Errorf("report = %+v, want nothing placed", report)
	}
	if routed.HoleCount() != 1 {
		t.Errorf("hole count = %d, want 1", routed.HoleCount())
	}
}

func TestRouteNoHoles(t *testing.T) {
	p := plateWithHoles(4)
	routed, report, err := Route(p, SprueConfig{WidthMm: 2, MaxLengthMm: 10, MaxCount: 5})
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if report.SpruesPlaced != 0 || routed.HoleCount() != 0 {
		t.Errorf("routing a hole-free plate changed it: %+v", report)
	}
}

func TestRouteNeverAddsHoles(t *testing.T) {
	p := plateWithHoles(4,
		geom2d.Point{X: 5, Y: 10},
		geom2d.Point{X: 20, Y: 20},
		geom2d.Point{X: 35, Y: 30},
	)
	for _, cfg := range []SprueConfig{
		{WidthMm: 2, MaxLengthMm: 50, MaxCount: 10},
		{WidthMm: 1, MaxLengthMm: 6, MaxCount: 2},
		{WidthMm: 3, MaxLengthMm: 50, MaxCount: 0},
	} {
		routed, report, err := Route(p, cfg)
		if err != nil {
			t.Fatalf("Route(%+v) failed: %v", cfg, err)
		}
		if routed.HoleCount() > p.HoleCount() {
			t.Errorf("cfg %+v: hole count grew %d -> %d", cfg, p.HoleCount(), routed.HoleCount())
		}
		if report.HolesAfter != routed.HoleCount() {
			t.Errorf("cfg %+v: report says %d holes, plate has %d", cfg, report.HolesAfter, routed.HoleCount())
		}
	}
}

func TestRouteInvalidParams(t *testing.T) {
	p := plateWithHoles(4, geom2d.Point{X: 5, Y: 20})
	cases := []SprueConfig{
		{WidthMm: 0, MaxLengthMm: 10, MaxCount: 1},
		{WidthMm: 2, MaxLengthMm: 0, MaxCount: 1},
		{WidthMm: 2, MaxLengthMm: 10, MaxCount: -1},
	}
	for _, cfg := range cases {
		if _, _, err := Route(p, cfg); !errors.Is(err, geom2d.ErrInvalidParameter) {
			t.Errorf("Route(%+v): err = %v, want ErrInvalidParameter", cfg, err)
		}
	}
}

package plate

import (
	"errors"
	"testing"

	"github.com/chazu/stencil/pkg/geom2d"
)

func TestPlaceMarksCircular(t *testing.T) {
	p := plateWithHoles(4)
	marked, report, err := PlaceMarks(p, MarkConfig{Type: MarkCircularHole, SizeMm: 5, EdgeOffsetMm: 10})
	if err != nil {
		t.Fatalf("PlaceMarks failed: %v", err)
	}
	if report.MarksPlaced != 4 {
		t.Errorf("marks placed = %d, want 4", report.MarksPlaced)
	}
	if marked.HoleCount() != 4 {
		t.Errorf("hole count = %d, want 4 mark holes", marked.HoleCount())
	}
	if marked.Area() >= p.Area() {
		t.Errorf("marked area %f should be below %f", marked.Area(), p.Area())
	}
}

func TestPlaceMarksCrosshair(t *testing.T) {
	p := plateWithHoles(4)
	marked, _, err := PlaceMarks(p, MarkConfig{Type: MarkCrosshair, SizeMm: 6, EdgeOffsetMm: 12})
	if err != nil {
		t.Fatalf("PlaceMarks failed: %v", err)
	}
	// Each crosshair is two overlapping bars merged into one cutout.
	if marked.HoleCount() != 4 {
		t.Errorf("hole count = %d, want 4", marked.HoleCount())
	}
	// A crosshair removes two size x size/5 bars minus their square
	// overlap: 2*(6*1.2) - 1.2^2 per mark.
	wantCut := 4 * (2*6*1.2 - 1.2*1.2)
	if !approx(p.Area()-marked.Area(), wantCut, 1e-3) {
		t.Errorf("area cut = %f, want %f", p.Area()-marked.Area(), wantCut)
	}
}

func TestPlaceMarksOnBoundary(t *testing.T) {
	// Zero edge offset puts marks on the corners; they merge with the
	// outer boundary instead of forming holes. Permitted, not an error.
	p := plateWithHoles(4)
	marked, _, err := PlaceMarks(p, MarkConfig{Type: MarkCircularHole, SizeMm: 5, EdgeOffsetMm: 0})
	if err != nil {
		t.Fatalf("PlaceMarks failed: %v", err)
	}
	if marked.HoleCount() != 0 {
		t.Errorf("hole count = %d, want 0 (corner notches)", marked.HoleCount())
	}
	if marked.Area() >= p.Area() {
		t.Errorf("marked area %f should be below %f", marked.Area(), p.Area())
	}
}

func TestPlaceMarksOverlapExistingHole(t *testing.T) {
	// A mark overlapping an existing cutout merges with it.
	p := plateWithHoles(6, geom2d.Point{X: 10, Y: 10})
	marked, _, err := PlaceMarks(p, MarkConfig{Type: MarkCircularHole, SizeMm: 5, EdgeOffsetMm: 10})
	if err != nil {
		t.Fatalf("PlaceMarks failed: %v", err)
	}
	// Bottom-left mark at (10,10) merges into the existing hole there:
	// 3 new holes plus the merged one.
	if marked.HoleCount() != 4 {
		t.Errorf("hole count = %d, want 4", marked.HoleCount())
	}
}

func TestPlaceMarksInvalidParams(t *testing.T) {
	p := plateWithHoles(4)
	cases := []MarkConfig{
		{Type: MarkCircularHole, SizeMm: 0, EdgeOffsetMm: 10},
		{Type: MarkCrosshair, SizeMm: -2, EdgeOffsetMm: 10},
		{Type: MarkCircularHole, SizeMm: 5, EdgeOffsetMm: -1},
		{Type: MarkType(99), SizeMm: 5, EdgeOffsetMm: 10},
	}
	for _, cfg := range cases {
		if _, _, err := PlaceMarks(p, cfg); !errors.Is(err, geom2d.ErrInvalidParameter) {
			t.Errorf("PlaceMarks(%+v): err = %v, want ErrInvalidParameter", cfg, err)
		}
	}
}

func TestMarkTypeString(t *testing.T) {
	if MarkCrosshair.String() != "crosshair" {
		t.Errorf("MarkCrosshair = %q", MarkCrosshair.String())
	}
	if MarkCircularHole.String() != "circular-hole" {
		t.Errorf("MarkCircularHole = %q", MarkCircularHole.String())
	}
}

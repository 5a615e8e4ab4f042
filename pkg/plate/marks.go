package plate

import (
	"fmt"
	"math"

	"github.com/chazu/stencil/pkg/geom2d"
)

// MarkType is the closed set of alignment mark shapes.
type MarkType int

const (
	MarkCrosshair MarkType = iota
	MarkCircularHole
)

func (t MarkType) String() string {
	switch t {
	case MarkCrosshair:
		return "crosshair"
	case MarkCircularHole:
		return "circular-hole"
	default:
		return fmt.Sprintf("MarkType(%d)", int(t))
	}
}

// circleSegments is the polygonization resolution for circular marks.
const circleSegments = 32

// MarkConfig holds the Mark Placer parameters.
type MarkConfig struct {
	Type         MarkType `json:"type"`
	SizeMm       float64  `json:"sizeMm"`       // mark diameter / crosshair span, > 0
	EdgeOffsetMm float64  `json:"edgeOffsetMm"` // inset of the anchors from the plate corners, >= 0
}

// Validate checks the parameter ranges.
func (c MarkConfig) Validate() error {
	switch c.Type {
	case MarkCrosshair, MarkCircularHole:
	default:
		return fmt.Errorf("unknown mark type %d: %w", int(c.Type), geom2d.ErrInvalidParameter)
	}
	if c.SizeMm <= 0 {
		return fmt.Errorf("mark size %.3f must be > 0: %w", c.SizeMm, geom2d.ErrInvalidParameter)
	}
	if c.EdgeOffsetMm < 0 {
		return fmt.Errorf("mark edge offset %.3f must be >= 0: %w", c.EdgeOffsetMm, geom2d.ErrInvalidParameter)
	}
	return nil
}

// MarkReport describes the mark placement outcome.
type MarkReport struct {
	MarksPlaced   int     `json:"marksPlaced"`
	HoleCount     int     `json:"holeCount"`
	DiscardedArea float64 `json:"discardedArea"` // largest-piece policy fallout, normally zero
}

// PlaceMarks subtracts one alignment mark at each of the four plate
// corners, inset by the edge offset from the plate's bounding box. All
// four shapes are unioned and removed in a single difference. Marks are
// not checked against existing cutouts; overlap simply merges.
func PlaceMarks(p geom2d.Region, cfg MarkConfig) (geom2d.Region, MarkReport, error) {
	var report MarkReport
	if err := cfg.Validate(); err != nil {
		return geom2d.Region{}, report, err
	}
	if err := p.Validate(); err != nil {
		return geom2d.Region{}, report, fmt.Errorf("plate: %w", err)
	}

	b := p.Bounds()
	o := cfg.EdgeOffsetMm
	anchors := []geom2d.Point{
		{X: b.Min.X + o, Y: b.Min.Y + o},
		{X: b.Max.X - o, Y: b.Min.Y + o},
		{X: b.Max.X - o, Y: b.Max.Y - o},
		{X: b.Min.X + o, Y: b.Max.Y - o},
	}

	var shapes []geom2d.Region
	for _, at := range anchors {
		shapes = append(shapes, markShape(cfg.Type, at, cfg.SizeMm)...)
	}
	carve, err := geom2d.Union(shapes...)
	if err != nil {
		return geom2d.Region{}, report, fmt.Errorf("mark union: %w", err)
	}
	pieces, err := geom2d.Difference(p, carve)
	if err != nil {
		return geom2d.Region{}, report, fmt.Errorf("mark difference: %w", err)
	}
	if len(pieces) == 0 {
		return geom2d.Region{}, report, fmt.Errorf("marks consumed the whole plate: %w", geom2d.ErrInvalidInput)
	}
	marked, discarded := pieces.Largest()
	report.MarksPlaced = len(anchors)
	report.DiscardedArea = discarded
	report.HoleCount = marked.HoleCount()
	return marked, report, nil
}

// markShape builds the shape(s) for one mark centered on at.
func markShape(t MarkType, at geom2d.Point, size float64) []geom2d.Region {
	switch t {
	case MarkCircularHole:
		return []geom2d.Region{{Outer: circleRing(at, size/2)}}
	default:
		// Crosshair: a horizontal and a vertical bar, each size long and
		// size/5 thick.
		bar := size / 5
		return []geom2d.Region{
			{Outer: rectRing(at, size, bar)},
			{Outer: rectRing(at, bar, size)},
		}
	}
}

// circleRing polygonizes a circle counter-clockwise.
func circleRing(center geom2d.Point, radius float64) geom2d.Ring {
	ring := make(geom2d.Ring, circleSegments)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / circleSegments
		ring[i] = geom2d.Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		}
	}
	return ring
}

// rectRing builds an axis-aligned rectangle counter-clockwise.
func rectRing(center geom2d.Point, w, h float64) geom2d.Ring {
	return geom2d.Ring{
		{X: center.X - w/2, Y: center.Y - h/2},
		{X: center.X + w/2, Y: center.Y - h/2},
		{X: center.X + w/2, Y: center.Y + h/2},
		{X: center.X - w/2, Y: center.Y + h/2},
	}
}

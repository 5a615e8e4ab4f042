package geom2d

import (
	"fmt"
	"math"
)

// Region is a polygon with holes: one outer boundary ring plus zero or
// more hole rings strictly contained in it. The outer ring winds
// counter-clockwise, holes wind clockwise.
type Region struct {
	Outer Ring   `json:"outer"`
	Holes []Ring `json:"holes,omitempty"`
}

// IsEmpty reports whether the region has no outer boundary.
func (g Region) IsEmpty() bool {
	return len(g.Outer) == 0
}

// HoleCount returns the number of hole rings.
func (g Region) HoleCount() int {
	return len(g.Holes)
}

// Area returns the enclosed area: outer area minus the area of all holes.
func (g Region) Area() float64 {
	a := math.Abs(g.Outer.Area())
	for _, h := range g.Holes {
		a -= math.Abs(h.Area())
	}
	return a
}

// Bounds returns the bounding box of the outer ring.
func (g Region) Bounds() Bounds {
	return g.Outer.Bounds()
}

// Clone returns a deep copy of the region.
func (g Region) Clone() Region {
	out := Region{Outer: g.Outer.Clone()}
	for _, h := range g.Holes {
		out.Holes = append(out.Holes, h.Clone())
	}
	return out
}

// Normalized returns a copy with the winding convention enforced:
// outer counter-clockwise, holes clockwise.
func (g Region) Normalized() Region {
	out := Region{Outer: g.Outer}
	if !g.Outer.IsCCW() {
		out.Outer = g.Outer.Reversed()
	}
	for _, h := range g.Holes {
		if h.IsCCW() {
			h = h.Reversed()
		}
		out.Holes = append(out.Holes, h)
	}
	return out
}

// Validate checks the region's structural invariants: an outer ring with
// at least three points and non-zero area, and every hole ring likewise.
// Hole containment is the boolean backend's responsibility and is not
// re-checked here.
func (g Region) Validate() error {
	if len(g.Outer) < 3 {
		return fmt.Errorf("outer ring has %d points, need at least 3: %w", len(g.Outer), ErrInvalidInput)
	}
	if math.Abs(g.Outer.Area()) == 0 {
		return fmt.Errorf("outer ring has zero area: %w", ErrInvalidInput)
	}
	for i, h := range g.Holes {
		if len(h) < 3 {
			return fmt.Errorf("hole %d has %d points, need at least 3: %w", i, len(h), ErrInvalidInput)
		}
	}
	return nil
}

// RegionSet is a collection of disjoint regions. The regions never
// overlap; a set is what union and difference operations return when the
// result has multiple connected pieces.
type RegionSet []Region

// Area returns the total enclosed area of all regions.
func (s RegionSet) Area() float64 {
	a := 0.0
	for _, g := range s {
		a += g.Area()
	}
	return a
}

// Bounds returns the bounding box of the whole set. The zero Bounds is
// returned for an empty set.
func (s RegionSet) Bounds() Bounds {
	if len(s) == 0 {
		return Bounds{}
	}
	b := s[0].Bounds()
	for _, g := range s[1:] {
		b = b.Union(g.Bounds())
	}
	return b
}

// Validate checks every region in the set.
func (s RegionSet) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("empty region set: %w", ErrInvalidInput)
	}
	for i, g := range s {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("region %d: %w", i, err)
		}
	}
	return nil
}

// Largest returns the region with the greatest enclosed area and the
// total area of the discarded remainder. Used by stages that apply the
// largest-piece policy when a boolean op splits a result; the discarded
// area is reported so the choice is never silent.
func (s RegionSet) Largest() (Region, float64) {
	if len(s) == 0 {
		return Region{}, 0
	}
	best := 0
	for i := 1; i < len(s); i++ {
		if s[i].Area() > s[best].Area() {
			best = i
		}
	}
	discarded := 0.0
	for i, g := range s {
		if i != best {
			discarded += g.Area()
		}
	}
	return s[best], discarded
}

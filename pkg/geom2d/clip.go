package geom2d

import (
	"fmt"
	"math"

	clipper "github.com/ctessum/go.clipper"
)

// The clipper backend works on scaled integer coordinates. One clipper
// unit is one micromillimeter times clipScale/1e3; at 1e6 a millimeter
// resolves to a nanometer, far below any tolerance the pipeline cares
// about, while plate-sized inputs stay well inside the int64 range.
const clipScale = 1e6

// toPath converts a ring to scaled clipper coordinates.
func toPath(r Ring) clipper.Path {
	path := make(clipper.Path, len(r))
	for i, p := range r {
		path[i] = &clipper.IntPoint{
			X: clipper.CInt(math.Round(p.X * clipScale)),
			Y: clipper.CInt(math.Round(p.Y * clipScale)),
		}
	}
	return path
}

// fromPath converts a clipper path back to millimeter coordinates.
func fromPath(p clipper.Path) Ring {
	r := make(Ring, len(p))
	for i, ip := range p {
		r[i] = Point{float64(ip.X) / clipScale, float64(ip.Y) / clipScale}
	}
	return r
}

// regionPaths returns a region's rings (outer then holes) as clipper
// paths, winding preserved. Because the convention is CCW outer / CW
// holes, the non-zero fill rule reproduces the region exactly.
func regionPaths(g Region) clipper.Paths {
	paths := make(clipper.Paths, 0, 1+len(g.Holes))
	paths = append(paths, toPath(g.Outer))
	for _, h := range g.Holes {
		paths = append(paths, toPath(h))
	}
	return paths
}

func regionSetPaths(s RegionSet) clipper.Paths {
	var paths clipper.Paths
	for _, g := range s {
		paths = append(paths, regionPaths(g)...)
	}
	return paths
}

// regionsFromTree rebuilds disjoint regions from a clipper PolyTree.
// Top-level nodes are outers, their children are holes, and anything
// nested inside a hole starts a new region again.
func regionsFromTree(tree *clipper.PolyTree) RegionSet {
	var out RegionSet
	var walk func(nodes []*clipper.PolyNode)
	walk = func(nodes []*clipper.PolyNode) {
		for _, n := range nodes {
			outer := fromPath(n.Contour())
			if len(outer) < 3 {
				walk(n.Childs())
				continue
			}
			if !outer.IsCCW() {
				outer = outer.Reversed()
			}
			g := Region{Outer: outer}
			for _, hn := range n.Childs() {
				hole := fromPath(hn.Contour())
				if len(hole) >= 3 {
					if hole.IsCCW() {
						hole = hole.Reversed()
					}
					g.Holes = append(g.Holes, hole)
				}
				// Solids nested inside this hole become their own regions.
				walk(hn.Childs())
			}
			out = append(out, g)
		}
	}
	walk(tree.Childs())
	return out
}

// Union merges the given regions into a set of pairwise disjoint
// regions. Overlapping and touching inputs are fused.
func Union(regions ...Region) (RegionSet, error) {
	if len(regions) == 0 {
		return nil, fmt.Errorf("union of nothing: %w", ErrInvalidInput)
	}
	c := clipper.NewClipper(clipper.IoNone)
	for _, g := range regions {
		c.AddPaths(regionPaths(g.Normalized()), clipper.PtSubject, true)
	}
	tree, ok := c.Execute2(clipper.CtUnion, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil, fmt.Errorf("union: clipper execution failed: %w", ErrInvalidInput)
	}
	return regionsFromTree(tree), nil
}

// Difference subtracts sub from g. The result may be empty, a single
// region, or several disjoint regions; the caller chooses how to handle
// a multi-piece result (the pipeline stages use the documented
// largest-piece policy).
func Difference(g Region, sub RegionSet) (RegionSet, error) {
	if g.IsEmpty() {
		return nil, fmt.Errorf("difference from empty region: %w", ErrInvalidInput)
	}
	c := clipper.NewClipper(clipper.IoNone)
	c.AddPaths(regionPaths(g.Normalized()), clipper.PtSubject, true)
	for _, s := range sub {
		c.AddPaths(regionPaths(s.Normalized()), clipper.PtClip, true)
	}
	tree, ok := c.Execute2(clipper.CtDifference, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil, fmt.Errorf("difference: clipper execution failed: %w", ErrInvalidInput)
	}
	return regionsFromTree(tree), nil
}

// Offset grows (positive distance) or shrinks (negative distance) a
// region. Offsetting can change topology: small features may vanish and
// nearby features may merge, so the result is a set.
func Offset(g Region, distance float64) (RegionSet, error) {
	if g.IsEmpty() {
		return nil, fmt.Errorf("offset of empty region: %w", ErrInvalidInput)
	}
	co := clipper.NewClipperOffset()
	// Miter joins keep offset corners sharp, so a square grown by d stays
	// a square d larger on every side.
	co.AddPaths(regionPaths(g.Normalized()), clipper.JtMiter, clipper.EtClosedPolygon)
	tree := co.Execute2(distance * clipScale)
	return regionsFromTree(tree), nil
}

// Repair makes a best-effort valid region out of a possibly
// self-intersecting one via a zero-offset self-union under the even-odd
// rule. If the result splits into several pieces the largest is kept
// (its smaller siblings are artifacts of the self-intersection).
// Returns ErrUnrepairable when the area collapses to zero.
func Repair(g Region) (Region, error) {
	if g.IsEmpty() {
		return Region{}, fmt.Errorf("repair of empty region: %w", ErrUnrepairable)
	}
	c := clipper.NewClipper(clipper.IoStrictlySimple)
	c.AddPaths(regionPaths(g), clipper.PtSubject, true)
	tree, ok := c.Execute2(clipper.CtUnion, clipper.PftEvenOdd, clipper.PftEvenOdd)
	if !ok {
		return Region{}, fmt.Errorf("repair: clipper execution failed: %w", ErrUnrepairable)
	}
	set := regionsFromTree(tree)
	if set.Area() <= 0 {
		return Region{}, fmt.Errorf("repair collapsed region to zero area: %w", ErrUnrepairable)
	}
	repaired, _ := set.Largest()
	return repaired, nil
}

package geom2d

import "math"

// Ring is an ordered sequence of points forming an implicitly closed
// polygon boundary. The first point is not repeated at the end. A valid
// ring has at least three distinct points.
type Ring []Point

// Area returns the signed area of the ring via the shoelace formula.
// Counter-clockwise rings have positive area.
func (r Ring) Area() float64 {
	if len(r) < 3 {
		return 0
	}
	a := 0.0
	j := len(r) - 1
	for i := range r {
		a += (r[j].X + r[i].X) * (r[i].Y - r[j].Y)
		j = i
	}
	return a / 2
}

// IsCCW reports whether the ring winds counter-clockwise.
func (r Ring) IsCCW() bool {
	return r.Area() >= 0
}

// Reversed returns a copy of the ring with opposite winding.
func (r Ring) Reversed() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// Clone returns a deep copy of the ring.
func (r Ring) Clone() Ring {
	out := make(Ring, len(r))
	copy(out, r)
	return out
}

// Centroid returns the area centroid of the ring. For near-degenerate
// rings (area below epsilon) it falls back to the vertex mean.
func (r Ring) Centroid() Point {
	if len(r) == 0 {
		return Point{}
	}
	a := r.Area()
	if math.Abs(a) < 1e-12 {
		var sum Point
		for _, p := range r {
			sum = sum.Add(p)
		}
		return sum.Scale(1 / float64(len(r)))
	}
	var cx, cy float64
	j := len(r) - 1
	for i := range r {
		cross := r[j].X*r[i].Y - r[i].X*r[j].Y
		cx += (r[j].X + r[i].X) * cross
		cy += (r[j].Y + r[i].Y) * cross
		j = i
	}
	return Point{cx / (6 * a), cy / (6 * a)}
}

// Bounds returns the axis-aligned bounding box of the ring.
func (r Ring) Bounds() Bounds {
	if len(r) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: r[0], Max: r[0]}
	for _, p := range r[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// NearestBoundaryPoint projects pt onto the ring's boundary and returns
// the closest point on any edge together with the Euclidean distance.
func (r Ring) NearestBoundaryPoint(pt Point) (Point, float64) {
	if len(r) == 0 {
		return Point{}, math.Inf(1)
	}
	best := r[0]
	bestDist := pt.Dist(r[0])
	j := len(r) - 1
	for i := range r {
		q := closestOnSegment(r[j], r[i], pt)
		if d := pt.Dist(q); d < bestDist {
			best, bestDist = q, d
		}
		j = i
	}
	return best, bestDist
}

// closestOnSegment returns the point on segment ab closest to p.
func closestOnSegment(a, b, p Point) Point {
	ab := b.Sub(a)
	den := ab.X*ab.X + ab.Y*ab.Y
	if den == 0 {
		return a
	}
	t := (p.Sub(a).X*ab.X + p.Sub(a).Y*ab.Y) / den
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}

// Package extrude lifts a 2D plate region into a watertight triangular
// prism mesh: the region is triangulated with libtess2, duplicated at
// z=0 and z=thickness, and every boundary edge (outer and holes) gets a
// side wall connecting the two layers.
package extrude

import (
	"fmt"
	"math"

	libtess2 "github.com/hajimehoshi/go-libtess2"

	"github.com/chazu/stencil/pkg/geom2d"
	"github.com/chazu/stencil/pkg/mesh"
)

// Extrude produces the prism mesh for a plate of the given thickness.
// The mesh is watertight by construction for clean input; if
// near-degenerate upstream geometry leaves gaps, one repair pass is
// applied before returning. Callers still re-validate.
func Extrude(p geom2d.Region, thickness float64) (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("extrude: %w", err)
	}
	if thickness <= 0 {
		return nil, fmt.Errorf("extrude: thickness %.3f must be > 0: %w", thickness, geom2d.ErrInvalidParameter)
	}

	// Ring coordinates pass through float32 once so the side walls and
	// the triangulated layers quantize identically and weld cleanly.
	norm := p.Normalized()
	rings := make([]geom2d.Ring, 0, 1+len(norm.Holes))
	rings = append(rings, quantizeRing(norm.Outer))
	for _, h := range norm.Holes {
		rings = append(rings, quantizeRing(h))
	}

	contours := make([]libtess2.Contour, len(rings))
	for i, r := range rings {
		c := make(libtess2.Contour, len(r))
		for j, pt := range r {
			c[j] = libtess2.Vertex{X: float32(pt.X), Y: float32(pt.Y)}
		}
		contours[i] = c
	}
	elems, verts, err := libtess2.Tesselate(contours, libtess2.WindingRuleOdd)
	if err != nil {
		return nil, fmt.Errorf("extrude: triangulation: %v: %w", err, geom2d.ErrExtrusionFailed)
	}
	if len(elems) < 3 {
		return nil, fmt.Errorf("extrude: triangulation produced no faces: %w", geom2d.ErrExtrusionFailed)
	}

	zTop := float32(thickness)
	b := newBuilder()

	// Top and bottom layers share the triangulation; the top winds
	// counter-clockwise (normal +z), the bottom is flipped (normal -z).
	for i := 0; i+2 < len(elems); i += 3 {
		i0, i1, i2 := elems[i], elems[i+1], elems[i+2]
		if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= len(verts) || i1 >= len(verts) || i2 >= len(verts) {
			continue
		}
		v0, v1, v2 := verts[i0], verts[i1], verts[i2]
		area := (v1.X-v0.X)*(v2.Y-v0.Y) - (v2.X-v0.X)*(v1.Y-v0.Y)
		if area == 0 {
			continue
		}
		if area < 0 {
			v1, v2 = v2, v1
		}
		b.tri(
			b.vertex(v0.X, v0.Y, zTop),
			b.vertex(v1.X, v1.Y, zTop),
			b.vertex(v2.X, v2.Y, zTop),
		)
		b.tri(
			b.vertex(v0.X, v0.Y, 0),
			b.vertex(v2.X, v2.Y, 0),
			b.vertex(v1.X, v1.Y, 0),
		)
	}
	if len(b.indices) == 0 {
		return nil, fmt.Errorf("extrude: every triangle was degenerate: %w", geom2d.ErrExtrusionFailed)
	}

	// Side walls. Walking the outer ring counter-clockwise and holes
	// clockwise, the outward face of each wall is to the right of
	// travel, so one quad construction serves both.
	for _, r := range rings {
		j := len(r) - 1
		for i := range r {
			pj, pi := r[j], r[i]
			if pj == pi {
				j = i
				continue
			}
			p0 := b.vertex(float32(pj.X), float32(pj.Y), 0)
			q0 := b.vertex(float32(pi.X), float32(pi.Y), 0)
			q1 := b.vertex(float32(pi.X), float32(pi.Y), zTop)
			p1 := b.vertex(float32(pj.X), float32(pj.Y), zTop)
			b.tri(p0, q0, q1)
			b.tri(p0, q1, p1)
			j = i
		}
	}

	m := b.build()
	if !m.IsWatertight() {
		mesh.Repair(m)
	}
	return m, nil
}

// quantizeRing rounds ring coordinates to float32 and drops points that
// collapse onto their predecessor.
func quantizeRing(r geom2d.Ring) geom2d.Ring {
	out := make(geom2d.Ring, 0, len(r))
	for _, p := range r {
		q := geom2d.Point{X: float64(float32(p.X)), Y: float64(float32(p.Y))}
		if n := len(out); n > 0 && out[n-1] == q {
			continue
		}
		out = append(out, q)
	}
	if n := len(out); n > 1 && out[0] == out[n-1] {
		out = out[:n-1]
	}
	return out
}

// builder accumulates an indexed mesh, welding vertices that land on
// the same quantized grid cell so layers and walls share indices.
type builder struct {
	verts   []float32
	indices []uint32
	lookup  map[[3]int64]uint32
}

func newBuilder() *builder {
	return &builder{lookup: make(map[[3]int64]uint32)}
}

// weldGrid is the vertex welding resolution in millimeters.
const weldGrid = 1e-5

func (b *builder) vertex(x, y, z float32) uint32 {
	key := [3]int64{
		int64(math.Round(float64(x) / weldGrid)),
		int64(math.Round(float64(y) / weldGrid)),
		int64(math.Round(float64(z) / weldGrid)),
	}
	if idx, ok := b.lookup[key]; ok {
		return idx
	}
	idx := uint32(len(b.verts) / 3)
	b.verts = append(b.verts, x, y, z)
	b.lookup[key] = idx
	return idx
}

func (b *builder) tri(a, c, d uint32) {
	if a == c || c == d || a == d {
		return
	}
	b.indices = append(b.indices, a, c, d)
}

func (b *builder) build() *mesh.Mesh {
	return &mesh.Mesh{Vertices: b.verts, Indices: b.indices}
}

// Package mesh defines the triangle mesh produced by extrusion and the
// watertightness validator/repairer that runs before export.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
package mesh

import "math"

// Mesh is an indexed triangle mesh. Vertices and Indices are the
// geometry; Normals are optional per-vertex display normals and are
// ignored (and cleared) by validation and repair.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals,omitempty"`
	Indices  []uint32  `json:"indices"` // [i0,i1,i2, ...] triangles
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Vertices) == 0 || len(m.Indices) == 0
}

// vertex returns vertex i as float64 coordinates.
func (m *Mesh) vertex(i uint32) [3]float64 {
	return [3]float64{
		float64(m.Vertices[3*i]),
		float64(m.Vertices[3*i+1]),
		float64(m.Vertices[3*i+2]),
	}
}

// face returns the vertex indices of triangle f.
func (m *Mesh) face(f int) (a, b, c uint32) {
	return m.Indices[3*f], m.Indices[3*f+1], m.Indices[3*f+2]
}

// BoundingBox returns the axis-aligned bounding box of all vertices.
func (m *Mesh) BoundingBox() (min, max [3]float64) {
	if m.IsEmpty() {
		return min, max
	}
	min = m.vertex(0)
	max = min
	for i := 1; i < m.VertexCount(); i++ {
		v := m.vertex(uint32(i))
		for a := 0; a < 3; a++ {
			min[a] = math.Min(min[a], v[a])
			max[a] = math.Max(max[a], v[a])
		}
	}
	return min, max
}

// Volume returns the signed volume enclosed by the mesh via the
// divergence theorem. Positive for a closed mesh with outward normals;
// meaningless for a non-watertight mesh.
func (m *Mesh) Volume() float64 {
	vol := 0.0
	for f := 0; f < m.TriangleCount(); f++ {
		a, b, c := m.face(f)
		va, vb, vc := m.vertex(a), m.vertex(b), m.vertex(c)
		vol += va[0]*(vb[1]*vc[2]-vb[2]*vc[1]) +
			va[1]*(vb[2]*vc[0]-vb[0]*vc[2]) +
			va[2]*(vb[0]*vc[1]-vb[1]*vc[0])
	}
	return vol / 6
}

// SurfaceArea returns the total area of all faces.
func (m *Mesh) SurfaceArea() float64 {
	area := 0.0
	for f := 0; f < m.TriangleCount(); f++ {
		area += m.faceArea(f)
	}
	return area
}

// faceArea returns the area of triangle f.
func (m *Mesh) faceArea(f int) float64 {
	a, b, c := m.face(f)
	va, vb, vc := m.vertex(a), m.vertex(b), m.vertex(c)
	ab := [3]float64{vb[0] - va[0], vb[1] - va[1], vb[2] - va[2]}
	ac := [3]float64{vc[0] - va[0], vc[1] - va[1], vc[2] - va[2]}
	cx := ab[1]*ac[2] - ab[2]*ac[1]
	cy := ab[2]*ac[0] - ab[0]*ac[2]
	cz := ab[0]*ac[1] - ab[1]*ac[0]
	return math.Sqrt(cx*cx+cy*cy+cz*cz) / 2
}

// edge is a directed edge between two vertex indices.
type edge struct {
	a, b uint32
}

// directedEdges counts every directed edge across all faces.
func (m *Mesh) directedEdges() map[edge]int {
	edges := make(map[edge]int, len(m.Indices))
	for f := 0; f < m.TriangleCount(); f++ {
		a, b, c := m.face(f)
		edges[edge{a, b}]++
		edges[edge{b, c}]++
		edges[edge{c, a}]++
	}
	return edges
}

// IsWatertight reports whether every edge is shared by exactly two
// consistently oriented faces: each directed edge appears once, and so
// does its reverse.
func (m *Mesh) IsWatertight() bool {
	if m.IsEmpty() {
		return false
	}
	edges := m.directedEdges()
	for e, n := range edges {
		if n != 1 || edges[edge{e.b, e.a}] != 1 {
			return false
		}
	}
	return true
}

package mesh

import "math"

// weldEps is the vertex merge distance. Vertices falling into the same
// weldEps-sized grid cell collapse to one.
const weldEps = 1e-5

// Repair cleans the mesh in place: drops faces with out-of-range or
// non-finite vertices, welds near-coincident vertices, removes
// degenerate and duplicate faces, closes boundary-edge loops with fan
// faces, and makes face orientation consistent with outward normals.
// Repair is best-effort and idempotent; callers must re-validate rather
// than assume success. Display normals are invalidated and cleared.
func Repair(m *Mesh) {
	if m == nil || len(m.Indices) == 0 {
		return
	}
	m.Normals = nil
	m.dropInvalidFaces()
	m.weldVertices()
	m.dropDegenerateFaces()
	m.dropDuplicateFaces()
	m.fillHoles()
	m.fixOrientation()
	m.compactVertices()
}

// dropInvalidFaces removes faces that reference vertices past the array
// end or vertices with non-finite coordinates.
func (m *Mesh) dropInvalidFaces() {
	limit := uint32(m.VertexCount())
	m.filterFaces(func(f int) bool {
		a, b, c := m.face(f)
		if a >= limit || b >= limit || c >= limit {
			return false
		}
		return isFinite(m.vertex(a)) && isFinite(m.vertex(b)) && isFinite(m.vertex(c))
	})
}

// weldVertices merges vertices closer than weldEps and remaps faces.
func (m *Mesh) weldVertices() {
	type cell [3]int64
	quant := func(v float32) int64 {
		return int64(math.Round(float64(v) / weldEps))
	}
	lookup := make(map[cell]uint32)
	remap := make([]uint32, m.VertexCount())
	verts := make([]float32, 0, len(m.Vertices))
	for i := 0; i < m.VertexCount(); i++ {
		k := cell{quant(m.Vertices[3*i]), quant(m.Vertices[3*i+1]), quant(m.Vertices[3*i+2])}
		idx, ok := lookup[k]
		if !ok {
			idx = uint32(len(verts) / 3)
			verts = append(verts, m.Vertices[3*i:3*i+3]...)
			lookup[k] = idx
		}
		remap[i] = idx
	}
	for i, ix := range m.Indices {
		m.Indices[i] = remap[ix]
	}
	m.Vertices = verts
}

// dropDegenerateFaces removes faces with repeated vertices or zero area.
func (m *Mesh) dropDegenerateFaces() {
	m.filterFaces(func(f int) bool {
		a, b, c := m.face(f)
		if a == b || b == c || a == c {
			return false
		}
		return m.faceArea(f) >= degenerateAreaEps
	})
}

// dropDuplicateFaces removes faces covering the same vertex triple as
// an earlier face, regardless of rotation or orientation.
func (m *Mesh) dropDuplicateFaces() {
	type triple [3]uint32
	seen := make(map[triple]bool, m.TriangleCount())
	m.filterFaces(func(f int) bool {
		a, b, c := m.face(f)
		t := triple{a, b, c}
		if t[0] > t[1] {
			t[0], t[1] = t[1], t[0]
		}
		if t[1] > t[2] {
			t[1], t[2] = t[2], t[1]
		}
		if t[0] > t[1] {
			t[0], t[1] = t[1], t[0]
		}
		if seen[t] {
			return false
		}
		seen[t] = true
		return true
	})
}

// fillHoles closes topological holes: boundary edges (edges without an
// opposing twin) are chained into loops and each loop is closed with a
// triangle fan. The fan winds against the boundary direction so the new
// faces orient consistently with their neighbors.
func (m *Mesh) fillHoles() {
	edges := m.directedEdges()
	succ := make(map[uint32]uint32)
	for e, n := range edges {
		if n == 1 && edges[edge{e.b, e.a}] == 0 {
			succ[e.a] = e.b
		}
	}
	visited := make(map[uint32]bool)
	for start := range succ {
		if visited[start] {
			continue
		}
		loop := []uint32{start}
		visited[start] = true
		closed := false
		cur := succ[start]
		for {
			if cur == start {
				closed = true
				break
			}
			next, ok := succ[cur]
			if !ok || visited[cur] {
				break
			}
			visited[cur] = true
			loop = append(loop, cur)
			cur = next
		}
		if !closed || len(loop) < 3 {
			continue
		}
		for k := 1; k+1 < len(loop); k++ {
			m.Indices = append(m.Indices, loop[0], loop[k+1], loop[k])
		}
	}
}

// fixOrientation flood-fills face adjacency, flipping faces whose
// shared edges run the same direction as an already-oriented neighbor,
// then flips the whole mesh if the enclosed volume comes out negative.
func (m *Mesh) fixOrientation() {
	nf := m.TriangleCount()
	if nf == 0 {
		return
	}
	adj := make(map[edge][]int)
	for f := 0; f < nf; f++ {
		a, b, c := m.face(f)
		for _, e := range [3]edge{{a, b}, {b, c}, {c, a}} {
			if e.a > e.b {
				e.a, e.b = e.b, e.a
			}
			adj[e] = append(adj[e], f)
		}
	}
	visited := make([]bool, nf)
	for seed := 0; seed < nf; seed++ {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		queue := []int{seed}
		for len(queue) > 0 {
			f := queue[0]
			queue = queue[1:]
			a, b, c := m.face(f)
			for _, e := range [3]edge{{a, b}, {b, c}, {c, a}} {
				k := e
				if k.a > k.b {
					k.a, k.b = k.b, k.a
				}
				faces := adj[k]
				if len(faces) != 2 {
					continue // boundary or non-manifold edge
				}
				for _, g := range faces {
					if g == f || visited[g] {
						continue
					}
					// Consistent orientation means the neighbor holds the
					// reversed edge.
					if m.faceHasDirectedEdge(g, e.a, e.b) {
						m.flipFace(g)
					}
					visited[g] = true
					queue = append(queue, g)
				}
			}
		}
	}
	if m.Volume() < 0 {
		for f := 0; f < nf; f++ {
			m.flipFace(f)
		}
	}
}

// faceHasDirectedEdge reports whether face f contains the directed edge
// a->b.
func (m *Mesh) faceHasDirectedEdge(f int, a, b uint32) bool {
	x, y, z := m.face(f)
	return (x == a && y == b) || (y == a && z == b) || (z == a && x == b)
}

// flipFace reverses the winding of face f.
func (m *Mesh) flipFace(f int) {
	m.Indices[3*f+1], m.Indices[3*f+2] = m.Indices[3*f+2], m.Indices[3*f+1]
}

// filterFaces keeps only faces for which keep returns true.
func (m *Mesh) filterFaces(keep func(f int) bool) {
	out := m.Indices[:0]
	for f := 0; f < m.TriangleCount(); f++ {
		if keep(f) {
			a, b, c := m.face(f)
			out = append(out, a, b, c)
		}
	}
	m.Indices = out
}

// compactVertices drops vertices no face references and remaps indices.
func (m *Mesh) compactVertices() {
	used := make([]bool, m.VertexCount())
	for _, ix := range m.Indices {
		used[ix] = true
	}
	remap := make([]uint32, m.VertexCount())
	verts := make([]float32, 0, len(m.Vertices))
	for i := range used {
		if used[i] {
			remap[i] = uint32(len(verts) / 3)
			verts = append(verts, m.Vertices[3*i:3*i+3]...)
		}
	}
	for i, ix := range m.Indices {
		m.Indices[i] = remap[ix]
	}
	m.Vertices = verts
}

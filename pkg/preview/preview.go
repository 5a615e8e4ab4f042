// Package preview renders a plate as a display mesh using the
// github.com/deadsy/sdfx SDF-based CAD library. The prism extruder in
// pkg/extrude is the authoritative path for export; this mesher exists
// for 3D viewports, where the marching cubes surface is cheap to
// produce at any resolution and per-vertex normals come for free.
package preview

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/stencil/pkg/geom2d"
	"github.com/chazu/stencil/pkg/mesh"
)

// DefaultCells controls marching cubes tessellation resolution.
const DefaultCells = 200

// Mesh builds a marching-cubes display mesh of the plate extruded to
// the given thickness. cells <= 0 selects DefaultCells.
func Mesh(p geom2d.Region, thickness float64, cells int) (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	if thickness <= 0 {
		return nil, fmt.Errorf("preview: thickness %.3f must be > 0: %w", thickness, geom2d.ErrInvalidParameter)
	}
	if cells <= 0 {
		cells = DefaultCells
	}

	solid, err := plateSolid(p.Normalized(), thickness)
	if err != nil {
		return nil, err
	}
	return toMesh(solid, cells), nil
}

// plateSolid builds the SDF: the outer boundary extruded to thickness,
// minus every hole extruded slightly taller so the subtraction cuts
// cleanly through both faces.
func plateSolid(p geom2d.Region, thickness float64) (sdf.SDF3, error) {
	outer, err := sdf.Polygon2D(ringVecs(p.Outer))
	if err != nil {
		return nil, fmt.Errorf("preview: outer polygon: %v: %w", err, geom2d.ErrInvalidInput)
	}
	solid := sdf.Extrude3D(outer, thickness)
	for i, h := range p.Holes {
		// Polygon2D wants counter-clockwise winding; holes are stored
		// clockwise.
		hp, err := sdf.Polygon2D(ringVecs(h.Reversed()))
		if err != nil {
			return nil, fmt.Errorf("preview: hole %d polygon: %v: %w", i, err, geom2d.ErrInvalidInput)
		}
		cutter := sdf.Extrude3D(hp, thickness*1.2)
		solid = sdf.Difference3D(solid, cutter)
	}
	// Extrude3D is symmetric about z=0; shift so the plate sits on the
	// z=0 plane like the exact prism mesh does.
	m := sdf.Translate3d(v3.Vec{Z: thickness / 2})
	return sdf.Transform3D(solid, m), nil
}

func ringVecs(r geom2d.Ring) []v2.Vec {
	vs := make([]v2.Vec, len(r))
	for i, pt := range r {
		vs[i] = v2.Vec{X: pt.X, Y: pt.Y}
	}
	return vs
}

// toMesh converts a solid to a triangle mesh using marching cubes.
func toMesh(s sdf.SDF3, cells int) *mesh.Mesh {
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &mesh.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}
}

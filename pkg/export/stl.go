// Package export converts meshes to the binary STL triangle-soup form
// consumed by slicers. Indexed vertices are expanded per face and face
// normals recomputed, so the conversion is lossless for geometry.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/hschendel/stl"

	"github.com/chazu/stencil/pkg/geom2d"
	"github.com/chazu/stencil/pkg/mesh"
)

// ToSolid converts a mesh to an STL solid with the given name.
func ToSolid(m *mesh.Mesh, name string) (*stl.Solid, error) {
	if m.IsEmpty() {
		return nil, fmt.Errorf("export: empty mesh: %w", geom2d.ErrInvalidInput)
	}
	tris := make([]stl.Triangle, 0, m.TriangleCount())
	for f := 0; f < m.TriangleCount(); f++ {
		a := vec3(m, m.Indices[3*f])
		b := vec3(m, m.Indices[3*f+1])
		c := vec3(m, m.Indices[3*f+2])
		tris = append(tris, stl.Triangle{
			Normal:   faceNormal(a, b, c),
			Vertices: [3]stl.Vec3{a, b, c},
		})
	}
	return &stl.Solid{Name: name, Triangles: tris}, nil
}

// Write writes the mesh as binary STL.
func Write(w io.Writer, m *mesh.Mesh, name string) error {
	solid, err := ToSolid(m, name)
	if err != nil {
		return err
	}
	if err := solid.WriteAll(w); err != nil {
		return fmt.Errorf("export: write stl: %w", err)
	}
	return nil
}

// WriteFile writes the mesh as a binary STL file.
func WriteFile(path string, m *mesh.Mesh, name string) error {
	solid, err := ToSolid(m, name)
	if err != nil {
		return err
	}
	if err := solid.WriteFile(path); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

func vec3(m *mesh.Mesh, i uint32) stl.Vec3 {
	return stl.Vec3{m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]}
}

// faceNormal returns the unit normal of the triangle abc, or the zero
// vector for a degenerate face (permitted by the STL format).
func faceNormal(a, b, c stl.Vec3) stl.Vec3 {
	ux, uy, uz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
	vx, vy, vz := c[0]-a[0], c[1]-a[1], c[2]-a[2]
	nx := uy*vz - uz*vy
	ny := uz*vx - ux*vz
	nz := ux*vy - uy*vx
	l := float32(math.Sqrt(float64(nx*nx + ny*ny + nz*nz)))
	if l == 0 {
		return stl.Vec3{}
	}
	return stl.Vec3{nx / l, ny / l, nz / l}
}

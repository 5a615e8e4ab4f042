package preview

import (
	"errors"
	"testing"

	"github.com/chazu/stencil/pkg/geom2d"
)

func plate() geom2d.Region {
	return geom2d.Region{Outer: geom2d.Ring{
		{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 20}, {X: 0, Y: 20},
	}}
}

func TestMesh(t *testing.T) {
	m, err := Mesh(plate(), 2, 64)
	if err != nil {
		t.Fatalf("Mesh: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("preview mesh is empty")
	}
	if len(m.Normals) != len(m.Vertices) {
		t.Errorf("normals length = %d, want %d", len(m.Normals), len(m.Vertices))
	}

	// Marching cubes is approximate; the surface should still land near
	// the plate extents.
	min, max := m.BoundingBox()
	if h := max[2] - min[2]; h < 1 || h > 3 {
		t.Errorf("height = %f, want roughly 2", h)
	}
	if w := max[0] - min[0]; w < 18 || w > 22 {
		t.Errorf("width = %f, want roughly 20", w)
	}
}

func TestMeshWithHole(t *testing.T) {
	p := plate()
	p.Holes = []geom2d.Ring{{
		{X: 5, Y: 5}, {X: 5, Y: 15}, {X: 15, Y: 15}, {X: 15, Y: 5},
	}}
	m, err := Mesh(p, 2, 64)
	if err != nil {
		t.Fatalf("Mesh: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("preview mesh is empty")
	}
	// The footprint is unchanged; the hole only removes interior surface.
	min, max := m.BoundingBox()
	if w := max[0] - min[0]; w < 18 || w > 22 {
		t.Errorf("width = %f, want roughly 20", w)
	}
}

func TestMeshDefaultCells(t *testing.T) {
	m, err := Mesh(plate(), 2, 0)
	if err != nil {
		t.Fatalf("Mesh: %v", err)
	}
	if m.IsEmpty() {
		t.Error("preview mesh is empty at default resolution")
	}
}

func TestMeshInvalidInput(t *testing.T) {
	if _, err := Mesh(geom2d.Region{}, 2, 64); !errors.Is(err, geom2d.ErrInvalidInput) {
		t.Errorf("empty region: err = %v, want ErrInvalidInput", err)
	}
	if _, err := Mesh(plate(), 0, 64); !errors.Is(err, geom2d.ErrInvalidParameter) {
		t.Errorf("zero thickness: err = %v, want ErrInvalidParameter", err)
	}
}

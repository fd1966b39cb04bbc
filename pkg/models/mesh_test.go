package models

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/blocky/pkg/math3d"
	"github.com/taigrr/blocky/pkg/render"
)

func TestDefaultMesh(t *testing.T) {
	m := DefaultMesh()
	if m.TriangleCount() != 1 {
		t.Fatalf("TriangleCount = %d, want 1", m.TriangleCount())
	}

	want := []struct {
		pos math3d.Vec3
		c   render.Color
	}{
		{math3d.V3(0, 1.3, 0), render.ColorRed},
		{math3d.V3(-1.2, -1, 0.5), render.ColorGreen},
		{math3d.V3(1.2, -1.3, -0.5), render.ColorBlue},
	}
	for i, w := range want {
		pos, c := m.GetVertex(m.GetFace(0)[i])
		if pos != w.pos || c != w.c {
			t.Errorf("vertex %d = %v %v, want %v %v", i, pos, c, w.pos, w.c)
		}
	}

	if m.BoundsMin != math3d.V3(-1.2, -1.3, -0.5) || m.BoundsMax != math3d.V3(1.2, 1.3, 0.5) {
		t.Errorf("bounds = %v..%v", m.BoundsMin, m.BoundsMax)
	}
}

func TestFromVertices(t *testing.T) {
	v := MeshVertex{Position: math3d.V3(1, 2, 3), Color: render.ColorWhite}

	tests := []struct {
		name  string
		n     int
		faces int
		err   error
	}{
		{"none", 0, 0, ErrNoTriangles},
		{"partial", 4, 0, ErrNoTriangles},
		{"one", 3, 1, nil},
		{"two", 6, 2, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verts := make([]MeshVertex, tc.n)
			for i := range verts {
				verts[i] = v
			}
			m, err := FromVertices(tc.name, verts)
			if !errors.Is(err, tc.err) {
				t.Fatalf("err = %v, want %v", err, tc.err)
			}
			if err == nil && m.TriangleCount() != tc.faces {
				t.Errorf("TriangleCount = %d, want %d", m.TriangleCount(), tc.faces)
			}
		})
	}
}

func TestDefaultMeshIsACopy(t *testing.T) {
	m := DefaultMesh()
	m.Transform(math3d.Translate(math3d.V3(5, 0, 0)))
	m.Vertices[0].Color = render.ColorWhite

	fresh := DefaultMesh()
	if fresh.Vertices[0].Position != math3d.V3(0, 1.3, 0) || fresh.Vertices[0].Color != render.ColorRed {
		t.Errorf("DefaultMesh returned a modified mesh: %+v", fresh.Vertices[0])
	}
	if fresh.VertexCount() != 3 || fresh.TriangleCount() != 1 {
		t.Errorf("got %d vertices, %d faces", fresh.VertexCount(), fresh.TriangleCount())
	}
}

func TestMeshNormalizeAndClone(t *testing.T) {
	m, err := FromVertices("big", []MeshVertex{
		{Position: math3d.V3(10, 10, 10)},
		{Position: math3d.V3(14, 10, 10)},
		{Position: math3d.V3(10, 12, 11)},
	})
	if err != nil {
		t.Fatal(err)
	}

	clone := m.Clone()
	m.Normalize()

	if got := m.Size(); math.Abs(got.X-2) > 1e-9 || math.Abs(got.Y-1) > 1e-9 || math.Abs(got.Z-0.5) > 1e-9 {
		t.Errorf("normalized size = %v, want (2, 1, 0.5)", got)
	}
	if c := m.Center(); !c.ApproxEqual(math3d.Vec3{}, 1e-9) {
		t.Errorf("normalized center = %v", c)
	}
	if clone.Vertices[0].Position != math3d.V3(10, 10, 10) {
		t.Error("Normalize changed the clone")
	}

	// A single point has no extent: it is only centered.
	p, _ := FromVertices("point", []MeshVertex{
		{Position: math3d.V3(3, 3, 3)}, {Position: math3d.V3(3, 3, 3)}, {Position: math3d.V3(3, 3, 3)},
	})
	p.Normalize()
	if p.Vertices[0].Position != (math3d.Vec3{}) {
		t.Errorf("point normalized to %v", p.Vertices[0].Position)
	}
}

func TestMeshRendersThroughRasterizer(t *testing.T) {
	fb := render.NewFramebuffer(200, 200)
	r := render.NewRasterizer(fb)
	r.Scale = 50
	r.SetResolution(4)
	r.RenderMesh(DefaultMesh(), 0.5)

	if r.Stats.Triangles != 2 || r.Stats.Rows == 0 {
		t.Errorf("stats = %+v", r.Stats)
	}
}

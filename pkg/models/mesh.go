// Package models provides the meshes blocky renders: the built-in demo
// triangle, triangles given as vertex lists, and glTF/GLB files.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/blocky/pkg/math3d"
	"github.com/taigrr/blocky/pkg/render"
)

// ErrNoTriangles is returned when a vertex list does not describe at least
// one whole triangle.
var ErrNoTriangles = errors.New("no triangles")

// Mesh is an indexed triangle mesh with per-vertex colors.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

var _ render.MeshRenderer = (*Mesh)(nil)

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Color    render.Color
}

// Face is a triangle given by three indices into Mesh.Vertices.
type Face struct {
	V [3]int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// demoMesh is the template DefaultMesh copies.
var demoMesh, _ = FromVertices("triangle", []MeshVertex{
	{Position: math3d.V3(0, 1.3, 0), Color: render.ColorRed},
	{Position: math3d.V3(-1.2, -1, 0.5), Color: render.ColorGreen},
	{Position: math3d.V3(1.2, -1.3, -0.5), Color: render.ColorBlue},
})

// DefaultMesh returns the red, green and blue demo triangle. Each call
// returns a fresh copy the caller may transform.
func DefaultMesh() *Mesh {
	return demoMesh.Clone()
}

// FromVertices builds a mesh whose consecutive vertex triples are faces.
func FromVertices(name string, verts []MeshVertex) (*Mesh, error) {
	if len(verts) == 0 || len(verts)%3 != 0 {
		return nil, fmt.Errorf("%d vertices: %w", len(verts), ErrNoTriangles)
	}

	m := NewMesh(name)
	m.Vertices = append(m.Vertices, verts...)
	for i := 0; i < len(verts); i += 3 {
		m.Faces = append(m.Faces, Face{V: [3]int{i, i + 1, i + 2}})
	}
	m.CalculateBounds()
	return m, nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
	}
	m.CalculateBounds()
}

// Normalize centers the mesh on the origin and scales it uniformly so its
// largest dimension spans [-1, 1], the size of the demo triangle.
func (m *Mesh) Normalize() {
	size := m.Size()
	extent := max(size.X, size.Y, size.Z)
	if extent == 0 {
		m.Transform(math3d.Translate(m.Center().Scale(-1)))
		return
	}
	m.Transform(math3d.ScaleUniform(2 / extent).Mul(math3d.Translate(m.Center().Scale(-1))))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// GetVertex returns the position and color of vertex i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetVertex(i int) (math3d.Vec3, render.Color) {
	v := m.Vertices[i]
	return v.Position, v.Color
}

// GetFace returns the vertex indices for face i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// Triangle returns face i as a renderable triangle.
func (m *Mesh) Triangle(i int) render.Triangle {
	var tri render.Triangle
	for k, idx := range m.Faces[i].V {
		tri.V[k] = render.Vertex{Position: m.Vertices[idx].Position, Color: m.Vertices[idx].Color}
	}
	return tri
}

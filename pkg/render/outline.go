package render

import "github.com/taigrr/blocky/pkg/math3d"

// DrawTriangleOutline draws the three edges of a model-space triangle as
// quantized lines, without filling it.
func (r *Rasterizer) DrawTriangleOutline(tri Triangle) {
	var sv [3]ScreenVertex
	for i, v := range tri.V {
		sv[i] = r.project(v)
	}
	r.DrawLine(sv[0], sv[1])
	r.DrawLine(sv[1], sv[2])
	r.DrawLine(sv[2], sv[0])
}

// DrawMeshOutline draws the edges of every face of mesh rotated by angle.
func (r *Rasterizer) DrawMeshOutline(mesh MeshRenderer, angle float64) {
	rot := math3d.RotateYMatrix(angle)
	for i := range mesh.TriangleCount() {
		r.DrawTriangleOutline(faceTriangle(mesh, i).Transformed(rot))
	}
}

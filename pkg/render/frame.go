package render

import "github.com/taigrr/blocky/pkg/math3d"

// RenderFrame draws the shadow and then the rotated, shaded triangle onto s
// with a default rasterizer. It returns the work done.
func RenderFrame(s Surface, tri Triangle, angle float64, res int) FillStats {
	r := NewRasterizer(s)
	r.SetResolution(res)
	r.RenderFrame(tri, angle)
	return r.Stats
}

// RenderFrame draws one frame of a single triangle: its ground shadow, then
// the triangle rotated by angle. Statistics and the span table start fresh.
func (r *Rasterizer) RenderFrame(tri Triangle, angle float64) {
	r.ResetStats()
	r.spans.Reset()

	if r.Shadow {
		r.DrawShadow(tri, angle)
	}
	r.drawShape(tri.Rotated(angle))
}

// RenderMesh draws every face of mesh like RenderFrame: all shadows first,
// then the faces in order. Faces are not depth sorted.
func (r *Rasterizer) RenderMesh(mesh MeshRenderer, angle float64) {
	r.ResetStats()
	r.spans.Reset()

	n := mesh.TriangleCount()
	if r.Shadow {
		for i := range n {
			r.DrawShadow(faceTriangle(mesh, i), angle)
		}
	}
	rot := math3d.RotateYMatrix(angle)
	for i := range n {
		r.drawShape(faceTriangle(mesh, i).Transformed(rot))
	}
}

func (r *Rasterizer) drawShape(tri Triangle) {
	if r.Outline {
		r.DrawTriangleOutline(tri)
		return
	}
	r.FillTriangle(tri)
}

// faceTriangle builds the model-space triangle for face i of mesh.
func faceTriangle(mesh MeshRenderer, i int) Triangle {
	var tri Triangle
	for k, idx := range mesh.GetFace(i) {
		pos, c := mesh.GetVertex(idx)
		tri.V[k] = Vertex{Position: pos, Color: c}
	}
	return tri
}

package render

// ShadowOf returns the triangle's ground shadow: rotated like the shape,
// flattened onto the ground height and painted one flat color.
func ShadowOf(tri Triangle, angle, ground float64, c Color) Triangle {
	var out Triangle
	for i, v := range tri.V {
		out.V[i] = Vertex{
			Position: v.Position.RotateY(angle).WithY(ground),
			Color:    c,
		}
	}
	return out
}

// DrawShadow fills the ground shadow of tri rotated by angle.
// Draw it before the shape so the shape covers it where they overlap.
// The shadow is one uniform color, so depth shading is off while it fills.
func (r *Rasterizer) DrawShadow(tri Triangle, angle float64) {
	shading := r.Shading
	r.Shading = ShadeFlat
	defer func() { r.Shading = shading }()

	r.FillTriangle(ShadowOf(tri, angle, r.Ground, r.ShadowColor))
}

package math3d

import "math"

// RotateY rotates p about the vertical axis by angle radians.
// Y is unchanged; X and Z follow the standard 2D rotation in the x-z plane.
func RotateY(p Vec3, angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{
		X: p.X*c + p.Z*s,
		Y: p.Y,
		Z: -p.X*s + p.Z*c,
	}
}

// RotateY returns the point rotated about the vertical axis.
func (a Vec3) RotateY(angle float64) Vec3 {
	return RotateY(a, angle)
}

// Project maps a model-space point onto a width x height surface.
//
// This is an orthographic scale-and-center projection: there is no
// perspective divide and Z is ignored. Y is inverted because pixel rows grow
// downward. Results outside the surface are valid; they are simply off-screen.
func Project(p Vec3, width, height int, scale float64) (x, y int) {
	x = int(p.X*scale + float64(width)/2)
	y = int(-p.Y*scale + float64(height)/2)
	return x, y
}

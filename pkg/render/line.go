package render

// DrawLine draws a quantized line from a to b.
//
// The walk is Bresenham's integer error accumulator, but every step moves a
// whole block (Resolution pixels) and every block is snapped down to the
// grid. Color and depth are interpolated by the squared distance walked.
// With resolution 1 this visits exactly the classic Bresenham pixels.
func (r *Rasterizer) DrawLine(a, b ScreenVertex) {
	r.drawLine(a, b, nil)
}

// drawLine walks from a to b, recording every emitted block in rec when it
// is non-nil.
func (r *Rasterizer) drawLine(a, b ScreenVertex, rec *SpanTable) {
	res := r.resolution
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx, sy := res, res
	if a.X > b.X {
		sx = -res
	}
	if a.Y > b.Y {
		sy = -res
	}
	err := dx - dy
	total := float64(dx*dx + dy*dy)

	// A walk within one block of the target stops; the budget bounds walks
	// that step past it when the delta is not a multiple of res.
	budget := (max(dx, dy)+res-1)/res + 1

	x, y := a.X, a.Y
	var lastX, lastY int
	for range budget {
		t := 0.0
		if total > 0 {
			ox, oy := x-a.X, y-a.Y
			t = clamp01(float64(ox*ox+oy*oy) / total)
		}
		lastX, lastY = r.emit(a, b, x, y, t, rec)

		if abs(x-b.X) < res && abs(y-b.Y) < res {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}

	// Close the line on the target's own block.
	if lastX != Snap(b.X, res) || lastY != Snap(b.Y, res) {
		r.emit(a, b, b.X, b.Y, 1, rec)
	}
}

// emit fills the block containing (x, y) with the color at parameter t and
// returns the block's corner.
func (r *Rasterizer) emit(a, b ScreenVertex, x, y int, t float64, rec *SpanTable) (bx, by int) {
	res := r.resolution
	base := Lerp(a.Color, b.Color, t)
	z := lerpFloat(a.Z, b.Z, t)
	c := base
	if r.Shading == ShadeDepth {
		c = Darken(base, ShadowFactor(z))
	}

	bx, by = Snap(x, res), Snap(y, res)
	r.surface.SetColor(c)
	r.surface.FillBlock(bx, by, res, res)
	r.Stats.Blocks++
	if rec != nil {
		rec.Record(by, Sample{X: bx, Color: base, Z: z})
	}
	return bx, by
}

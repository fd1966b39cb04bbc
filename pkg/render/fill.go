package render

import (
	"cmp"
	"slices"
)

// FillTriangle projects a model-space triangle onto the surface and fills it.
func (r *Rasterizer) FillTriangle(tri Triangle) {
	r.FillTriangle2D(r.project(tri.V[0]), r.project(tri.V[1]), r.project(tri.V[2]))
}

// FillTriangle2D fills a triangle given in surface coordinates, one scanline
// per resolution step, using the configured FillStrategy.
func (r *Rasterizer) FillTriangle2D(a, b, c ScreenVertex) {
	v := [3]ScreenVertex{a, b, c}
	// Stable: equal rows keep input order, which the slope setup relies on.
	slices.SortStableFunc(v[:], func(p, q ScreenVertex) int {
		return cmp.Compare(p.Y, q.Y)
	})

	r.Stats.Triangles++
	switch r.Strategy {
	case FillSpans:
		r.fillSpans(v)
	default:
		r.fillAnalytic(v)
	}
}

// fillAnalytic walks the long edge (v1->v3) and the short edges (v1->v2,
// then v2->v3) with incrementally accumulated x positions. Rows are the
// snapped rows from Snap(v1.Y) to Snap(v3.Y); each one is evaluated at its
// row position clamped into [v1.Y, v3.Y], so the rows holding the top and
// bottom vertices are always drawn.
func (r *Rasterizer) fillAnalytic(v [3]ScreenVertex) {
	v1, v2, v3 := v[0], v[1], v[2]
	res := r.resolution

	if v1.Y == v3.Y {
		r.fillFlat(v)
		return
	}

	slope13 := slope(v1, v3)
	slope12 := slope(v1, v2)
	slope23 := slope(v2, v3)

	xLong := float64(v1.X)
	xShort := float64(v1.X)
	lower := false
	prev := v1.Y

	for row := Snap(v1.Y, res); row <= v3.Y; row += res {
		y := min(max(row, v1.Y), v3.Y)
		dy := float64(y - prev)
		prev = y

		xLong += slope13 * dy
		if lower {
			xShort += slope23 * dy
		} else if y < v2.Y {
			xShort += slope12 * dy
		} else {
			// First row of the lower half: start the short edge at v2.
			lower = true
			xShort = float64(v2.X) + slope23*float64(y-v2.Y)
		}

		t := param(y, v1.Y, v3.Y, 1)
		long := ScreenVertex{
			X:     int(xLong),
			Y:     y,
			Color: Lerp(v1.Color, v3.Color, t),
			Z:     lerpFloat(v1.Z, v3.Z, t),
		}

		var short ScreenVertex
		if lower {
			t := param(y, v2.Y, v3.Y, 0)
			short = ScreenVertex{
				X:     int(xShort),
				Y:     y,
				Color: Lerp(v2.Color, v3.Color, t),
				Z:     lerpFloat(v2.Z, v3.Z, t),
			}
		} else {
			t := param(y, v1.Y, v2.Y, 1)
			short = ScreenVertex{
				X:     int(xShort),
				Y:     y,
				Color: Lerp(v1.Color, v2.Color, t),
				Z:     lerpFloat(v1.Z, v2.Z, t),
			}
		}

		r.drawLine(long, short, nil)
		r.Stats.Rows++
	}
}

// fillFlat fills a zero-height triangle as a single row spanning its
// leftmost and rightmost vertices.
func (r *Rasterizer) fillFlat(v [3]ScreenVertex) {
	left, right := v[0], v[0]
	for _, p := range v[1:] {
		if p.X < left.X {
			left = p
		}
		if p.X > right.X {
			right = p
		}
	}
	r.drawLine(left, right, nil)
	r.Stats.Rows++
}

// fillSpans rasterizes the three edges into the span table and fills each
// recorded row between its extreme samples.
func (r *Rasterizer) fillSpans(v [3]ScreenVertex) {
	res := r.resolution
	r.spans.Reset()
	r.drawLine(v[0], v[1], r.spans)
	r.drawLine(v[1], v[2], r.spans)
	r.drawLine(v[2], v[0], r.spans)

	r.fillRows(r.spans, Snap(v[0].Y, res), Snap(v[2].Y, res))
}

// fillRows fills every snapped row from top to bottom between the extreme
// samples of t. Rows without samples are counted in MissingRows and skipped.
func (r *Rasterizer) fillRows(t *SpanTable, top, bottom int) {
	res := r.resolution
	for y := top; y <= bottom; y += res {
		left, right, ok := t.Bounds(y)
		if !ok {
			r.Stats.MissingRows++
			r.logger().Debug("no edge samples on scanline", "row", y, "resolution", res)
			continue
		}
		r.drawLine(left.vertex(y), right.vertex(y), nil)
		r.Stats.Rows++
	}
}

// vertex turns a recorded sample back into a line endpoint on row y.
func (s Sample) vertex(y int) ScreenVertex {
	return ScreenVertex{X: s.X, Y: y, Color: s.Color, Z: s.Z}
}

// slope returns the change in x per unit of y from a to b, or 0 for a
// horizontal edge.
func slope(a, b ScreenVertex) float64 {
	if b.Y == a.Y {
		return 0
	}
	return float64(b.X-a.X) / float64(b.Y-a.Y)
}

// param returns the normalized position of y between y0 and y1, or def when
// the interval is empty.
func param(y, y0, y1 int, def float64) float64 {
	if y1 == y0 {
		return def
	}
	return float64(y-y0) / float64(y1-y0)
}

package render

import (
	"maps"
	"slices"
)

// Sample is one block emitted on a scanline while rasterizing an edge.
type Sample struct {
	X     int     // Snapped column
	Color Color   // Interpolated color, before depth shading
	Z     float64 // Interpolated depth
}

// SpanTable maps a snapped row to the samples recorded on it.
//
// It lives for a single fill: Reset it before rasterizing a new triangle's
// edges, since rows are looked up by exact key and stale samples from another
// shape or resolution would widen spans.
type SpanTable struct {
	rows map[int][]Sample
}

// NewSpanTable creates an empty span table.
func NewSpanTable() *SpanTable {
	return &SpanTable{rows: make(map[int][]Sample)}
}

// Reset removes every recorded sample.
func (t *SpanTable) Reset() {
	clear(t.rows)
}

// Record adds a sample to row y.
func (t *SpanTable) Record(y int, s Sample) {
	t.rows[y] = append(t.rows[y], s)
}

// Row returns the samples recorded on row y in recording order.
func (t *SpanTable) Row(y int) []Sample {
	return t.rows[y]
}

// Len returns the number of rows holding samples.
func (t *SpanTable) Len() int {
	return len(t.rows)
}

// Rows returns the recorded row keys in ascending order.
func (t *SpanTable) Rows() []int {
	return slices.Sorted(maps.Keys(t.rows))
}

// Bounds returns the leftmost and rightmost samples of row y.
// Ties keep the first sample recorded. ok is false if the row is empty.
func (t *SpanTable) Bounds(y int) (left, right Sample, ok bool) {
	samples := t.rows[y]
	if len(samples) == 0 {
		return Sample{}, Sample{}, false
	}
	left, right = samples[0], samples[0]
	for _, s := range samples[1:] {
		if s.X < left.X {
			left = s
		}
		if s.X > right.X {
			right = s
		}
	}
	return left, right, true
}

package render

import (
	"github.com/charmbracelet/log"
	"github.com/taigrr/blocky/pkg/math3d"
)

// DefaultScale is the number of pixels per model unit used by Project.
const DefaultScale = 200.0

// DefaultGround is the model-space height shadows are flattened onto.
const DefaultGround = -1.0

// Vertex is a model-space vertex with its own color.
type Vertex struct {
	Position math3d.Vec3 // Model position
	Color    Color       // Vertex color
}

// Triangle represents a triangle to be rasterized.
type Triangle struct {
	V [3]Vertex
}

// Rotated returns the triangle rotated about the vertical axis.
func (t Triangle) Rotated(angle float64) Triangle {
	for i := range t.V {
		t.V[i].Position = t.V[i].Position.RotateY(angle)
	}
	return t
}

// Transformed returns the triangle with every position multiplied by m.
func (t Triangle) Transformed(m math3d.Mat4) Triangle {
	for i := range t.V {
		t.V[i].Position = m.MulVec3(t.V[i].Position)
	}
	return t
}

// ScreenVertex is a projected vertex: integer surface coordinates plus the
// color and model-space depth carried along for interpolation.
type ScreenVertex struct {
	X, Y  int
	Color Color
	Z     float64
}

// Shading selects how depth affects block colors.
type Shading int

const (
	ShadeDepth Shading = iota // Darken by ShadowFactor(z)
	ShadeFlat                 // Interpolated color only
)

// FillStrategy selects how the filler finds each scanline's boundaries.
type FillStrategy int

const (
	// FillAnalytic walks the triangle edges with incremental slopes.
	FillAnalytic FillStrategy = iota
	// FillSpans rasterizes the edges into a SpanTable and fills between the
	// leftmost and rightmost samples recorded on each row.
	FillSpans
)

// FillStats counts rasterization work. It is reset by RenderFrame.
type FillStats struct {
	Triangles   int // Triangles filled (shadows included)
	Rows        int // Scanlines filled
	Blocks      int // Blocks emitted by the line rasterizer
	MissingRows int // Span-table rows with no recorded samples
}

// MeshRenderer is implemented by meshes the rasterizer can draw.
type MeshRenderer interface {
	TriangleCount() int
	GetFace(i int) [3]int
	GetVertex(i int) (pos math3d.Vec3, c Color)
}

// Rasterizer draws quantized lines and triangles onto a Surface.
type Rasterizer struct {
	surface    Surface
	resolution int
	spans      *SpanTable

	Scale       float64      // Pixels per model unit
	Ground      float64      // Height shadows are flattened onto
	ShadowColor Color        // Flat color of shadows
	Shading     Shading      // Depth shading mode
	Strategy    FillStrategy // Scanline boundary strategy
	Shadow      bool         // Draw the ground shadow in RenderFrame
	Outline     bool         // Draw only triangle edges in RenderFrame
	Stats       FillStats    // Statistics for debugging/testing
	Logger      *log.Logger  // Nil uses log.Default()
}

// NewRasterizer creates a rasterizer drawing onto s with resolution 1.
func NewRasterizer(s Surface) *Rasterizer {
	return &Rasterizer{
		surface:     s,
		resolution:  1,
		spans:       NewSpanTable(),
		Scale:       DefaultScale,
		Ground:      DefaultGround,
		ShadowColor: ColorShadow,
		Shading:     ShadeDepth,
		Strategy:    FillAnalytic,
		Shadow:      true,
	}
}

// SetSurface changes the surface the rasterizer draws on.
func (r *Rasterizer) SetSurface(s Surface) {
	r.surface = s
}

// Surface returns the current surface.
func (r *Rasterizer) Surface() Surface {
	return r.surface
}

// SetResolution sets the block size. Values below 1 are clamped to 1.
func (r *Rasterizer) SetResolution(res int) {
	if res < 1 {
		r.logger().Warn("invalid resolution, clamping to 1", "resolution", res)
		res = 1
	}
	r.resolution = res
}

// Resolution returns the block size.
func (r *Rasterizer) Resolution() int {
	return r.resolution
}

// Spans returns the span table filled by the last FillSpans triangle.
func (r *Rasterizer) Spans() *SpanTable {
	return r.spans
}

// ResetStats zeroes the statistics (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.Stats = FillStats{}
}

func (r *Rasterizer) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

// ClampResolution returns res, or 1 if res is below 1.
func ClampResolution(res int) int {
	return max(res, 1)
}

// Snap returns the nearest multiple of res at or below v.
// It floors for negative values too, so off-screen blocks stay on the grid.
func Snap(v, res int) int {
	m := v % res
	if m < 0 {
		m += res
	}
	return v - m
}

// project maps a model-space vertex onto the current surface.
func (r *Rasterizer) project(v Vertex) ScreenVertex {
	w, h := r.surface.Size()
	x, y := math3d.Project(v.Position, w, h, r.Scale)
	return ScreenVertex{X: x, Y: y, Color: v.Color, Z: v.Position.Z}
}

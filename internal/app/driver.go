// Package app drives blocky frames: it reads the slider values once per
// frame, clears the surface, draws the grid, renders the mesh with its
// shadow and draws the widgets on top.
package app

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/taigrr/blocky/pkg/models"
	"github.com/taigrr/blocky/pkg/render"
)

// Valuer is anything that supplies a value once per frame, typically a
// slider.
type Valuer interface {
	Value() float64
}

// Fixed is a Valuer that never changes.
type Fixed float64

// Value returns f.
func (f Fixed) Value() float64 { return float64(f) }

// Widget is drawn over the rendered frame.
type Widget interface {
	Draw(s render.Surface)
}

// Driver renders frames of a mesh onto a surface.
type Driver struct {
	Background render.Color
	GridColor  render.Color
	Grid       bool
	Widgets    []Widget
	Logger     *log.Logger // Nil uses log.Default()

	raster     *render.Rasterizer
	mesh       *models.Mesh
	rotation   Valuer
	resolution Valuer

	now        func() time.Time
	frames     int
	windowFrom time.Time
}

// NewDriver creates a driver rendering mesh with r. rotation supplies the
// angle in radians and resolution the block size.
func NewDriver(r *render.Rasterizer, mesh *models.Mesh, rotation, resolution Valuer) *Driver {
	return &Driver{
		Background: render.ColorBackdrop,
		GridColor:  render.ColorGrid,
		Grid:       true,
		raster:     r,
		mesh:       mesh,
		rotation:   rotation,
		resolution: resolution,
		now:        time.Now,
	}
}

// SetInputs replaces the sources of the rotation angle and resolution.
func (d *Driver) SetInputs(rotation, resolution Valuer) {
	d.rotation = rotation
	d.resolution = resolution
}

// Rasterizer returns the driver's rasterizer.
func (d *Driver) Rasterizer() *render.Rasterizer {
	return d.raster
}

// Frame draws one frame onto s and returns the rasterizer's statistics.
func (d *Driver) Frame(s render.Surface) render.FillStats {
	angle := d.rotation.Value()
	res := render.ClampResolution(int(d.resolution.Value()))

	d.raster.SetSurface(s)
	d.raster.SetResolution(res)

	w, h := s.Size()
	s.SetColor(d.Background)
	s.FillBlock(0, 0, w, h)
	if d.Grid {
		DrawGrid(s, res, d.GridColor)
	}

	if d.mesh.TriangleCount() == 1 {
		d.raster.RenderFrame(d.mesh.Triangle(0), angle)
	} else {
		d.raster.RenderMesh(d.mesh, angle)
	}

	stats := d.raster.Stats
	d.checkStats(res, stats)

	for _, widget := range d.Widgets {
		widget.Draw(s)
	}

	d.countFrame(res, stats)
	return stats
}

// checkStats warns when the span fill skipped rows.
func (d *Driver) checkStats(res int, stats render.FillStats) {
	if stats.MissingRows > 0 {
		d.logger().Warn("scanlines without edge samples", "rows", stats.MissingRows, "resolution", res)
	}
}

// countFrame logs the frame rate about once a second.
func (d *Driver) countFrame(res int, stats render.FillStats) {
	now := d.now()
	if d.windowFrom.IsZero() {
		d.windowFrom = now
		return
	}
	d.frames++

	elapsed := now.Sub(d.windowFrom)
	if elapsed < time.Second {
		return
	}
	d.logger().Debug("frame rate",
		"fps", float64(d.frames)/elapsed.Seconds(),
		"resolution", res,
		"rows", stats.Rows,
		"blocks", stats.Blocks,
	)
	d.frames = 0
	d.windowFrom = now
}

func (d *Driver) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.Default()
}

// DrawGrid draws vertical and horizontal lines every res pixels across s.
func DrawGrid(s render.Surface, res int, c render.Color) {
	res = render.ClampResolution(res)
	w, h := s.Size()
	s.SetColor(c)
	for x := 0; x < w; x += res {
		s.DrawPixelLine(x, 0, x, h-1)
	}
	for y := 0; y < h; y += res {
		s.DrawPixelLine(0, y, w-1, y)
	}
}

package app

import (
	"github.com/charmbracelet/log"
	"github.com/taigrr/blocky/internal/config"
	"github.com/taigrr/blocky/internal/slider"
)

// Slider tracks, in logical frame pixels.
const (
	sliderX      = 50
	sliderWidth  = 200
	sliderHeight = 10
	rotationY    = 50
	resolutionY  = 100
)

// Controls holds the rotation and resolution sliders shared by the
// frontends.
type Controls struct {
	Rotation   *slider.Slider
	Resolution *slider.Slider

	// Speed rotates the shape continuously, in radians per second.
	Speed float64
	// Paused stops automatic rotation without losing Speed.
	Paused bool
}

// NewControls creates sliders from the configured ranges.
func NewControls(cfg config.Config) *Controls {
	rot, res := cfg.Rotation, cfg.Resolution
	return &Controls{
		Rotation: slider.New(sliderX, rotationY, sliderWidth, sliderHeight,
			rot.Min, rot.Max, rot.Initial, cfg.FPS),
		Resolution: slider.New(sliderX, resolutionY, sliderWidth, sliderHeight,
			float64(res.Min), float64(res.Max), float64(res.Initial), cfg.FPS),
		Speed: rot.Speed,
	}
}

// Update advances automatic rotation by dt seconds and steps both springs.
// A slider being dragged is not rotated automatically.
func (c *Controls) Update(dt float64) {
	if c.Speed != 0 && !c.Paused && !c.Rotation.Dragging() {
		c.Rotation.Advance(c.Speed * dt)
	}
	c.Rotation.Update()
	c.Resolution.Update()
}

// Press starts dragging whichever slider is under (x, y).
func (c *Controls) Press(x, y int) bool {
	return c.Rotation.Press(x, y) || c.Resolution.Press(x, y)
}

// Drag moves the slider being dragged.
func (c *Controls) Drag(x int) {
	c.Rotation.Drag(x)
	c.Resolution.Drag(x)
}

// Release ends any drag.
func (c *Controls) Release() {
	c.Rotation.Release()
	c.Resolution.Release()
}

// Widgets returns the sliders for drawing.
func (c *Controls) Widgets() []Widget {
	return []Widget{c.Rotation, c.Resolution}
}

// NewFromConfig builds the controls and a driver for cfg. The mesh and
// rasterizer come from the configuration too. Both driver and rasterizer
// log to logger, or to log.Default() when it is nil.
func NewFromConfig(cfg config.Config, logger *log.Logger) (*Driver, *Controls, error) {
	mesh, err := cfg.Mesh()
	if err != nil {
		return nil, nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	logger.Debug("mesh ready", "name", mesh.Name, "faces", mesh.TriangleCount(), "vertices", mesh.VertexCount())

	controls := NewControls(cfg)
	r := cfg.Rasterizer(nil)
	r.Logger = logger
	d := NewDriver(r, mesh, controls.Rotation, controls.Resolution)
	d.Logger = logger
	d.Background = cfg.Background.Color()
	d.GridColor = cfg.GridColor.Color()
	d.Grid = cfg.Grid
	d.Widgets = controls.Widgets()
	return d, controls, nil
}

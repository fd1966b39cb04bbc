// Package config loads and validates blocky's TOML configuration.
//
// A configuration starts from Default, is overlaid by an optional TOML file
// (Load), then by command-line flags, and must pass Validate before use.
//
// Example file:
//
//	fill = "spans"
//	grid = true
//
//	[resolution]
//	min = 1
//	max = 40
//	initial = 12
//
//	[[vertex]]
//	position = [0, 1.3, 0]
//	color = [255, 0, 0]
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/taigrr/blocky/pkg/math3d"
	"github.com/taigrr/blocky/pkg/models"
	"github.com/taigrr/blocky/pkg/render"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// Fill strategy names.
const (
	FillAnalytic = "analytic"
	FillSpans    = "spans"
)

// Shading names.
const (
	ShadingDepth = "depth"
	ShadingFlat  = "flat"
)

// RGB is an opaque color written as [r, g, b].
type RGB [3]uint8

// Color converts c to a render color.
func (c RGB) Color() render.Color {
	return render.RGB(c[0], c[1], c[2])
}

// Config is the complete blocky configuration.
type Config struct {
	Width       int        `toml:"width"`
	Height      int        `toml:"height"`
	Scale       float64    `toml:"scale"` // Pixels per model unit
	FPS         int        `toml:"fps"`
	Fill        string     `toml:"fill"`    // analytic | spans
	Shading     string     `toml:"shading"` // depth | flat
	Shadow      bool       `toml:"shadow"`
	Outline     bool       `toml:"outline"`
	Grid        bool       `toml:"grid"`
	Ground      float64    `toml:"ground"`
	Model       string     `toml:"model"` // Optional .glb/.gltf path
	Background  RGB        `toml:"background"`
	GridColor   RGB        `toml:"grid_color"`
	ShadowColor RGB        `toml:"shadow_color"`
	Resolution  Resolution `toml:"resolution"`
	Rotation    Rotation   `toml:"rotation"`
	Vertices    []Vertex   `toml:"vertex"`
}

// Resolution is the range of the block size slider.
type Resolution struct {
	Min     int `toml:"min"`
	Max     int `toml:"max"`
	Initial int `toml:"initial"`
}

// Rotation is the range of the rotation slider, in radians.
// Speed rotates the shape continuously, in radians per second.
type Rotation struct {
	Min     float64 `toml:"min"`
	Max     float64 `toml:"max"`
	Initial float64 `toml:"initial"`
	Speed   float64 `toml:"speed"`
}

// Vertex is one corner of a config-supplied triangle.
type Vertex struct {
	Position [3]float64 `toml:"position"`
	Color    RGB        `toml:"color"`
}

// Default returns the built-in configuration: an 800x600 view of the demo
// triangle at 60 frames per second.
func Default() Config {
	return Config{
		Width:       800,
		Height:      600,
		Scale:       render.DefaultScale,
		FPS:         60,
		Fill:        FillAnalytic,
		Shading:     ShadingDepth,
		Shadow:      true,
		Grid:        true,
		Ground:      render.DefaultGround,
		Background:  RGB{0, 0, 0},
		GridColor:   RGB{50, 50, 50},
		ShadowColor: RGB{0, 0, 0},
		Resolution:  Resolution{Min: 1, Max: 80, Initial: 10},
		Rotation:    Rotation{Min: 0, Max: 2 * math.Pi, Initial: 0, Speed: 0.5},
	}
}

// Load reads a TOML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.Scale <= 0:
		return fmt.Errorf("%w: scale %v must be positive", ErrInvalidConfig, c.Scale)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d must be positive", ErrInvalidConfig, c.FPS)
	case c.Fill != FillAnalytic && c.Fill != FillSpans:
		return fmt.Errorf("%w: fill %q (want %s or %s)", ErrInvalidConfig, c.Fill, FillAnalytic, FillSpans)
	case c.Shading != ShadingDepth && c.Shading != ShadingFlat:
		return fmt.Errorf("%w: shading %q (want %s or %s)", ErrInvalidConfig, c.Shading, ShadingDepth, ShadingFlat)
	}

	r := c.Resolution
	switch {
	case r.Min < 1:
		return fmt.Errorf("%w: resolution.min %d must be at least 1", ErrInvalidConfig, r.Min)
	case r.Max < r.Min:
		return fmt.Errorf("%w: resolution.max %d below min %d", ErrInvalidConfig, r.Max, r.Min)
	case r.Initial < r.Min || r.Initial > r.Max:
		return fmt.Errorf("%w: resolution.initial %d outside [%d, %d]", ErrInvalidConfig, r.Initial, r.Min, r.Max)
	}

	rot := c.Rotation
	switch {
	case !(rot.Max > rot.Min):
		return fmt.Errorf("%w: rotation.max %v must exceed min %v", ErrInvalidConfig, rot.Max, rot.Min)
	case rot.Initial < rot.Min || rot.Initial > rot.Max:
		return fmt.Errorf("%w: rotation.initial %v outside [%v, %v]", ErrInvalidConfig, rot.Initial, rot.Min, rot.Max)
	}

	if len(c.Vertices)%3 != 0 {
		return fmt.Errorf("%w: %d vertices do not form whole triangles", ErrInvalidConfig, len(c.Vertices))
	}
	if c.Model != "" && len(c.Vertices) > 0 {
		return fmt.Errorf("%w: model and vertex are mutually exclusive", ErrInvalidConfig)
	}
	return nil
}

// FillStrategy returns the rasterizer strategy named by Fill.
func (c Config) FillStrategy() render.FillStrategy {
	if c.Fill == FillSpans {
		return render.FillSpans
	}
	return render.FillAnalytic
}

// ShadingMode returns the rasterizer shading named by Shading.
func (c Config) ShadingMode() render.Shading {
	if c.Shading == ShadingFlat {
		return render.ShadeFlat
	}
	return render.ShadeDepth
}

// Mesh builds the configured shape: the model file, the listed vertices,
// or the demo triangle.
func (c Config) Mesh() (*models.Mesh, error) {
	switch {
	case c.Model != "":
		m, err := models.LoadGLB(c.Model)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		return m, nil
	case len(c.Vertices) > 0:
		verts := make([]models.MeshVertex, len(c.Vertices))
		for i, v := range c.Vertices {
			verts[i] = models.MeshVertex{
				Position: math3d.V3(v.Position[0], v.Position[1], v.Position[2]),
				Color:    v.Color.Color(),
			}
		}
		return models.FromVertices("config", verts)
	default:
		return models.DefaultMesh(), nil
	}
}

// Rasterizer creates a rasterizer for s configured from c.
func (c Config) Rasterizer(s render.Surface) *render.Rasterizer {
	r := render.NewRasterizer(s)
	r.Scale = c.Scale
	r.Ground = c.Ground
	r.ShadowColor = c.ShadowColor.Color()
	r.Shading = c.ShadingMode()
	r.Strategy = c.FillStrategy()
	r.Shadow = c.Shadow
	r.Outline = c.Outline
	r.SetResolution(c.Resolution.Initial)
	return r
}

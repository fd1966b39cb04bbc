// Package slider implements the horizontal value sliders that control
// blocky's rotation angle and block resolution.
//
// A slider has a target, set by dragging or nudging, and a displayed value
// that follows the target through a critically damped harmonica spring.
package slider

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/blocky/pkg/render"
)

// Spring parameters: moderate speed, no overshoot.
const (
	springFrequency = 6.0
	springDamping   = 1.0
)

// Slider is a draggable value in [Min, Max].
type Slider struct {
	X, Y          int // Top-left of the track
	Width, Height int
	Min, Max      float64

	value    float64
	target   float64
	velocity float64
	spring   harmonica.Spring
	dragging bool
}

// New creates a slider whose track starts at (x, y). The value starts at
// initial, clamped to the range. fps is the rate Update is called at.
func New(x, y, width, height int, lo, hi, initial float64, fps int) *Slider {
	s := &Slider{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Min:    lo,
		Max:    hi,
		spring: harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
	}
	s.target = s.clamp(initial)
	s.value = s.target
	return s
}

// Value returns the displayed value.
func (s *Slider) Value() float64 {
	return s.clamp(s.value)
}

// Target returns the value the slider is moving toward.
func (s *Slider) Target() float64 {
	return s.target
}

// SetTarget moves the target to v, clamped to the range.
func (s *Slider) SetTarget(v float64) {
	s.target = s.clamp(v)
}

// Nudge moves the target by delta.
func (s *Slider) Nudge(delta float64) {
	s.SetTarget(s.target + delta)
}

// Advance moves the target by delta, wrapping around the range instead of
// stopping at its ends. The displayed value wraps with it so the spring
// does not sweep back across the whole range.
func (s *Slider) Advance(delta float64) {
	span := s.Max - s.Min
	if span <= 0 {
		return
	}
	next := s.target + delta
	wrapped := s.Min + math.Mod(next-s.Min, span)
	if wrapped < s.Min {
		wrapped += span
	}
	s.value += wrapped - next
	s.target = wrapped
}

// Snap jumps the displayed value to the target.
func (s *Slider) Snap() {
	s.value = s.target
	s.velocity = 0
}

// Update advances the spring by one frame.
func (s *Slider) Update() {
	s.value, s.velocity = s.spring.Update(s.value, s.velocity, s.target)
}

// Contains reports whether (x, y) is on the slider's track.
func (s *Slider) Contains(x, y int) bool {
	half := s.Height / 2
	return x >= s.X && x <= s.X+s.Width && y >= s.Y-half && y <= s.Y+half
}

// Press starts a drag if (x, y) is on the track and reports whether it did.
func (s *Slider) Press(x, y int) bool {
	if !s.Contains(x, y) {
		return false
	}
	s.dragging = true
	s.Drag(x)
	return true
}

// Drag sets the target from the pointer column while dragging.
func (s *Slider) Drag(x int) {
	if !s.dragging || s.Width <= 0 {
		return
	}
	rel := float64(x-s.X) / float64(s.Width)
	s.SetTarget(s.Min + rel*(s.Max-s.Min))
}

// Release ends a drag.
func (s *Slider) Release() {
	s.dragging = false
}

// Dragging reports whether a drag is in progress.
func (s *Slider) Dragging() bool {
	return s.dragging
}

// Draw paints the grey track and the blue square knob.
func (s *Slider) Draw(surface render.Surface) {
	surface.SetColor(render.ColorTrack)
	surface.FillBlock(s.X, s.Y, s.Width, s.Height)

	surface.SetColor(render.ColorKnob)
	surface.FillBlock(s.knobX(), s.Y-s.Height/2, s.Height, s.Height)
}

// knobX returns the left edge of the knob.
func (s *Slider) knobX() int {
	frac := 0.0
	if s.Max > s.Min {
		frac = (s.Value() - s.Min) / (s.Max - s.Min)
	}
	return int(frac*float64(s.Width)) + s.X - s.Height/2
}

func (s *Slider) clamp(v float64) float64 {
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Package render provides quantized software rasterization for blocky.
//
// Geometry is drawn in square blocks of Resolution x Resolution pixels whose
// corners always sit on the resolution grid, so blocks emitted by separate
// draw calls tile without gaps or overlap.
package render

import (
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Framebuffer is a 2D array of pixels. It implements Surface.
type Framebuffer struct {
	Width  int          // Width in pixels
	Height int          // Height in pixels
	Pixels []color.RGBA // Row-major pixel data

	pen color.RGBA // Color used by FillBlock and DrawPixelLine
}

var _ Surface = (*Framebuffer)(nil)

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
		pen:    ColorWhite,
	}
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int) {
	return fb.Width, fb.Height
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	// Use copy-doubling for faster clearing
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// SetColor sets the pen color.
func (fb *Framebuffer) SetColor(c color.RGBA) {
	fb.pen = c
}

// FillBlock fills a rectangle with the pen color, clipped to the framebuffer.
func (fb *Framebuffer) FillBlock(x, y, w, h int) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, fb.Width), min(y+h, fb.Height)
	for py := y0; py < y1; py++ {
		row := fb.Pixels[py*fb.Width : (py+1)*fb.Width]
		for px := x0; px < x1; px++ {
			row[px] = fb.pen
		}
	}
}

// DrawPixelLine draws a line from (x0, y0) to (x1, y1) with the pen color
// using Bresenham's algorithm.
func (fb *Framebuffer) DrawPixelLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, fb.pen)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// ScaleTo resamples the framebuffer into dst with nearest-neighbour
// filtering, which keeps quantized blocks crisp.
func (fb *Framebuffer) ScaleTo(dst *Framebuffer) {
	out := image.NewRGBA(image.Rect(0, 0, dst.Width, dst.Height))
	src := fb.ToImage()
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			dst.Pixels[y*dst.Width+x] = out.RGBAAt(x, y)
		}
	}
}

// Scaled returns a copy of the framebuffer enlarged by an integer factor.
func (fb *Framebuffer) Scaled(factor int) *Framebuffer {
	if factor <= 1 {
		out := NewFramebuffer(fb.Width, fb.Height)
		copy(out.Pixels, fb.Pixels)
		return out
	}
	out := NewFramebuffer(fb.Width*factor, fb.Height*factor)
	fb.ScaleTo(out)
	return out
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}

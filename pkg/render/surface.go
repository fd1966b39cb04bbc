package render

// Surface is the drawing capability the rasterizer writes to.
// The pixel format is up to the implementation; blocky only hands it opaque
// 8-bit-per-channel colors.
type Surface interface {
	// Size returns the drawable area in pixels.
	Size() (width, height int)
	// SetColor selects the color used by the following draw calls.
	SetColor(c Color)
	// FillBlock fills the w x h rectangle whose top-left corner is (x, y).
	FillBlock(x, y, w, h int)
	// DrawPixelLine draws a one pixel wide line between two points.
	DrawPixelLine(x0, y0, x1, y1 int)
}

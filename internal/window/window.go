// Package window shows blocky in a desktop window. The sliders are dragged
// with the mouse.
package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/blocky/internal/app"
	"github.com/taigrr/blocky/pkg/render"
)

// Title is the window title.
const Title = "blocky"

// Run opens a width x height window and renders a frame per tick until the
// window is closed or Escape is pressed. It blocks.
func Run(driver *app.Driver, controls *app.Controls, width, height, fps int) error {
	g := &game{
		driver:   driver,
		controls: controls,
		fb:       render.NewFramebuffer(width, height),
		pixels:   make([]byte, width*height*4),
		dt:       1 / float64(fps),
	}
	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetTPS(fps)

	// Update returning ebiten.Termination makes RunGame return nil.
	return ebiten.RunGame(g)
}

type game struct {
	driver   *app.Driver
	controls *app.Controls
	fb       *render.Framebuffer
	img      *ebiten.Image
	pixels   []byte
	dt       float64
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.controls.Press(x, y)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.controls.Drag(x)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.controls.Release()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.controls.Paused = !g.controls.Paused
	}

	g.controls.Update(g.dt)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.driver.Frame(g.fb)

	if g.img == nil {
		g.img = ebiten.NewImage(g.fb.Width, g.fb.Height)
	}
	for i, p := range g.fb.Pixels {
		j := i * 4
		g.pixels[j+0] = p.R
		g.pixels[j+1] = p.G
		g.pixels[j+2] = p.B
		g.pixels[j+3] = 0xFF
	}
	g.img.WritePixels(g.pixels)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/blocky/internal/app"
	"github.com/taigrr/blocky/internal/config"
	"github.com/taigrr/blocky/pkg/render"
)

// Keyboard steps for the sliders.
const (
	rotationStep   = 0.1
	resolutionStep = 1
)

func newViewCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Render in the terminal (default)",
		Long: `Render in the terminal using half-block characters.

Controls:
  Left/Right  rotate
  Up/Down     change the block size (also W/S, A/D rotate)
  Mouse drag  move a slider
  Space       pause automatic rotation
  G           toggle the grid
  O           toggle outline mode
  H           toggle the shadow
  F           switch fill strategy
  Shift+S     switch shading
  Q, Esc      quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			return runView(cmd.Context(), cfg, opts)
		},
	}
}

// viewer is the state of the terminal view. The logical frame is rendered
// at the configured size and scaled down to the terminal's pixels.
type viewer struct {
	driver   *app.Driver
	controls *app.Controls

	logical *render.Framebuffer
	screen  *render.Framebuffer
	cols    int
	rows    int
}

func newViewer(driver *app.Driver, controls *app.Controls, cfg config.Config, cols, rows int) *viewer {
	v := &viewer{
		driver:   driver,
		controls: controls,
		logical:  render.NewFramebuffer(cfg.Width, cfg.Height),
	}
	v.resize(cols, rows)
	return v
}

func (v *viewer) resize(cols, rows int) {
	v.cols, v.rows = max(cols, 1), max(rows, 1)
	v.screen = render.NewFramebuffer(render.TerminalSize(v.cols, v.rows))
}

// toLogical maps a terminal cell to logical frame coordinates.
func (v *viewer) toLogical(col, row int) (x, y int) {
	x = col * v.logical.Width / v.cols
	y = (row*2 + 1) * v.logical.Height / (v.rows * 2)
	return x, y
}

// frame renders the next frame into the terminal-sized framebuffer.
func (v *viewer) frame(dt float64) render.FillStats {
	v.controls.Update(dt)
	stats := v.driver.Frame(v.logical)
	v.logical.ScaleTo(v.screen)
	return stats
}

// keyBinding maps key names, as understood by uv.KeyPressEvent.MatchString,
// to an action on the viewer.
type keyBinding struct {
	keys   []string
	action func(*viewer)
}

var keyBindings = []keyBinding{
	{[]string{"left", "a"}, func(v *viewer) { v.controls.Rotation.Nudge(-rotationStep) }},
	{[]string{"right", "d"}, func(v *viewer) { v.controls.Rotation.Nudge(rotationStep) }},
	{[]string{"up", "w"}, func(v *viewer) { v.controls.Resolution.Nudge(resolutionStep) }},
	{[]string{"down", "s"}, func(v *viewer) { v.controls.Resolution.Nudge(-resolutionStep) }},
	{[]string{"space"}, func(v *viewer) { v.controls.Paused = !v.controls.Paused }},
	{[]string{"g"}, func(v *viewer) { v.driver.Grid = !v.driver.Grid }},
	{[]string{"o"}, func(v *viewer) {
		r := v.driver.Rasterizer()
		r.Outline = !r.Outline
	}},
	{[]string{"h"}, func(v *viewer) {
		r := v.driver.Rasterizer()
		r.Shadow = !r.Shadow
	}},
	{[]string{"f"}, func(v *viewer) {
		r := v.driver.Rasterizer()
		if r.Strategy == render.FillSpans {
			r.Strategy = render.FillAnalytic
		} else {
			r.Strategy = render.FillSpans
		}
	}},
	{[]string{"shift+s", "S"}, func(v *viewer) {
		r := v.driver.Rasterizer()
		if r.Shading == render.ShadeFlat {
			r.Shading = render.ShadeDepth
		} else {
			r.Shading = render.ShadeFlat
		}
	}},
}

// handle applies one terminal event and reports whether the view should
// quit.
func (v *viewer) handle(ev uv.Event) (quit bool) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		if ev.MatchString("escape", "q", "ctrl+c") {
			return true
		}
		for _, b := range keyBindings {
			if ev.MatchString(b.keys...) {
				b.action(v)
				break
			}
		}

	case uv.MouseClickEvent:
		v.controls.Press(v.toLogical(ev.X, ev.Y))

	case uv.MouseMotionEvent:
		x, _ := v.toLogical(ev.X, ev.Y)
		v.controls.Drag(x)

	case uv.MouseReleaseEvent:
		v.controls.Release()
	}
	return false
}

func runView(ctx context.Context, cfg config.Config, opts *rootOpts) error {
	logger, closeLog, err := openLogFile(opts.logFile, opts.level())
	if err != nil {
		return err
	}
	defer closeLog()

	driver, controls, err := app.NewFromConfig(cfg, logger)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1002h") // Button-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1002l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	v := newViewer(driver, controls, cfg, width, height)
	logger.Info("terminal view started", "cols", width, "rows", height, "fps", cfg.FPS)

	// The event reader is the only other goroutine; it hands events to the
	// frame loop, which owns all rendering state.
	events := make(chan uv.Event)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if _, ok := ev.(uv.WindowSizeEvent); ok {
				term.Erase()
			}
			if v.handle(ev) {
				return nil
			}
			if size, ok := ev.(uv.WindowSizeEvent); ok {
				term.Resize(size.Width, size.Height)
			}

		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), 0.1)
			last = now

			v.frame(dt)
			v.screen.Draw(term, uv.Rect(0, 0, v.cols, v.rows))
			if err := term.Display(); err != nil {
				return fmt.Errorf("display frame: %w", err)
			}
		}
	}
}

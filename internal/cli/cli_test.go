package cli

import (
	"context"
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/blocky/internal/app"
	"github.com/taigrr/blocky/internal/config"
	"github.com/taigrr/blocky/pkg/render"
)

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2026-01-01")
	defer SetVersion("", "", "")

	if version != "1.0.0" || commit != "abc123" || date != "2026-01-01" {
		t.Errorf("version info = %q %q %q", version, commit, date)
	}
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func decodePNG(t *testing.T, path string) (w, h int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestSnapshotCommand(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		wantW int
		wantH int
	}{
		{"defaults", nil, 800, 600},
		{"zoomed", []string{"--zoom", "2", "--resolution", "16"}, 1600, 1200},
		{"spans flat", []string{"--fill", "spans", "--shading", "flat", "--angle", "1.2"}, 800, 600},
		{"with sliders", []string{"--sliders", "-r", "30"}, 800, 600},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "frame.png")
			args := append([]string{"snapshot", "-o", out}, tc.args...)
			if err := runCLI(t, args...); err != nil {
				t.Fatalf("snapshot: %v", err)
			}
			if w, h := decodePNG(t, out); w != tc.wantW || h != tc.wantH {
				t.Errorf("snapshot size = %dx%d, want %dx%d", w, h, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestSnapshotWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "blocky.toml")
	body := "width = 320\nheight = 200\ngrid = false\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "frame.png")
	if err := runCLI(t, "snapshot", "--config", cfgPath, "-o", out); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if w, h := decodePNG(t, out); w != 320 || h != 200 {
		t.Errorf("snapshot size = %dx%d, want 320x200", w, h)
	}
}

func TestSnapshotErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		args    []string
		invalid bool
	}{
		{"bad fill", []string{"--fill", "diagonal"}, true},
		{"bad shading", []string{"--shading", "gouraud"}, true},
		{"zero resolution", []string{"--resolution", "0"}, true},
		{"zero zoom", []string{"--zoom", "0"}, true},
		{"missing config", []string{"--config", filepath.Join(dir, "none.toml")}, false},
		{"missing model", []string{"--model", filepath.Join(dir, "none.glb")}, false},
		{"unwritable output", []string{"-o", filepath.Join(dir, "no", "such", "dir.png")}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"snapshot", "-o", filepath.Join(dir, "x.png")}, tc.args...)
			err := runCLI(t, args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, config.ErrInvalidConfig); got != tc.invalid {
				t.Errorf("errors.Is(err, ErrInvalidConfig) = %v, want %v (%v)", got, tc.invalid, err)
			}
		})
	}
}

func newTestViewer(t *testing.T, cols, rows int) *viewer {
	t.Helper()
	cfg := config.Default()
	cfg.Rotation.Speed = 0
	driver, controls, err := app.NewFromConfig(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return newViewer(driver, controls, cfg, cols, rows)
}

func TestViewerFrame(t *testing.T) {
	v := newTestViewer(t, 80, 24)
	if v.screen.Width != 80 || v.screen.Height != 48 {
		t.Fatalf("screen = %dx%d, want 80x48", v.screen.Width, v.screen.Height)
	}

	stats := v.frame(1.0 / 60)
	if stats.Triangles != 2 {
		t.Errorf("Triangles = %d, want 2", stats.Triangles)
	}
	// The triangle covers the middle of the terminal.
	if c := v.screen.GetPixel(40, 24); c == render.ColorBackdrop || c == render.ColorGrid {
		t.Errorf("center pixel = %v, want the shape", c)
	}

	v.resize(0, 0)
	if v.cols != 1 || v.rows != 1 {
		t.Errorf("resize(0, 0) = %dx%d cells, want 1x1", v.cols, v.rows)
	}
}

func TestViewerToLogical(t *testing.T) {
	v := newTestViewer(t, 80, 30)

	tests := []struct {
		col, row int
		x, y     int
	}{
		{0, 0, 0, 10},
		{40, 15, 400, 310},
		{5, 5, 50, 110},
	}
	for _, tc := range tests {
		if x, y := v.toLogical(tc.col, tc.row); x != tc.x || y != tc.y {
			t.Errorf("toLogical(%d, %d) = %d,%d, want %d,%d", tc.col, tc.row, x, y, tc.x, tc.y)
		}
	}
}

func TestKeyBindings(t *testing.T) {
	v := newTestViewer(t, 80, 24)
	r := v.driver.Rasterizer()

	find := func(key string) func(*viewer) {
		for _, b := range keyBindings {
			for _, k := range b.keys {
				if k == key {
					return b.action
				}
			}
		}
		t.Fatalf("no binding for %q", key)
		return nil
	}

	res := v.controls.Resolution.Target()
	find("up")(v)
	if got := v.controls.Resolution.Target(); got != res+resolutionStep {
		t.Errorf("up: resolution target %v, want %v", got, res+resolutionStep)
	}

	find("right")(v)
	if got := v.controls.Rotation.Target(); got != rotationStep {
		t.Errorf("right: rotation target %v, want %v", got, rotationStep)
	}

	toggles := []struct {
		key   string
		check func() bool
	}{
		{"space", func() bool { return v.controls.Paused }},
		{"g", func() bool { return !v.driver.Grid }},
		{"o", func() bool { return r.Outline }},
		{"h", func() bool { return !r.Shadow }},
		{"f", func() bool { return r.Strategy == render.FillSpans }},
		{"S", func() bool { return r.Shading == render.ShadeFlat }},
	}
	for _, tc := range toggles {
		find(tc.key)(v)
		if !tc.check() {
			t.Errorf("%q did not toggle", tc.key)
		}
		find(tc.key)(v)
		if tc.check() {
			t.Errorf("%q did not toggle back", tc.key)
		}
	}
}

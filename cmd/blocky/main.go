// blocky - quantized triangle rasterizer
//
// Spins a color-interpolated triangle and its ground shadow, drawn in square
// blocks whose size is set by a slider. Runs in the terminal (default), in a
// desktop window, or renders a single frame to PNG.
//
// Usage:
//
//	blocky [view]            terminal view
//	blocky window            desktop window
//	blocky snapshot -o f.png single frame
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/taigrr/blocky/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		// fang has already printed the error.
		os.Exit(1)
	}
}

// Package cli implements the blocky command-line interface.
//
// # Commands
//
//   - view: render in the terminal with half-block characters (default)
//   - window: render in a desktop window
//   - snapshot: render one frame to a PNG file
//
// # Configuration
//
// Every command starts from the built-in defaults, applies the TOML file
// given by --config, then the --fill, --shading and --model flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. The terminal view writes its log to
// --log-file since stderr is the screen.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/taigrr/blocky/internal/config"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOpts holds the persistent flags shared by every command.
type rootOpts struct {
	configPath string
	verbose    bool
	logFile    string
	fill       string
	shading    string
	model      string
}

// Execute runs the blocky CLI with ctx. Errors are printed by fang before
// they are returned.
func Execute(ctx context.Context) error {
	return fang.Execute(ctx, NewRootCmd(),
		fang.WithVersion(version),
		fang.WithCommit(commit),
	)
}

// NewRootCmd builds the command tree. Running it without a subcommand
// starts the terminal view.
func NewRootCmd() *cobra.Command {
	opts := &rootOpts{}

	root := &cobra.Command{
		Use:          "blocky",
		Short:        "blocky spins a shaded triangle drawn in quantized blocks",
		Long:         `blocky rasterizes a rotating, color-interpolated triangle and its ground shadow with a block-quantized Bresenham line walk and scanline fill. Sliders control the rotation angle and the block size.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, opts.level()))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			return runView(cmd.Context(), cfg, opts)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("blocky %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&opts.logFile, "log-file", "", "log file for the terminal view")
	flags.StringVar(&opts.fill, "fill", config.FillAnalytic, "scanline fill: analytic or spans")
	flags.StringVar(&opts.shading, "shading", config.ShadingDepth, "block shading: depth or flat")
	flags.StringVarP(&opts.model, "model", "m", "", "glTF/GLB model to render instead of the triangle")

	root.AddCommand(newViewCmd(opts))
	root.AddCommand(newWindowCmd(opts))
	root.AddCommand(newSnapshotCmd(opts))

	return root
}

func (o *rootOpts) level() log.Level {
	if o.verbose {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// loadConfig reads the configuration file and applies the flags that were
// set explicitly on the command line.
func (o *rootOpts) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		cfg, err = config.Load(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("fill") {
		cfg.Fill = o.fill
	}
	if flags.Changed("shading") {
		cfg.Shading = o.shading
	}
	if flags.Changed("model") {
		cfg.Model = o.model
		cfg.Vertices = nil
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	loggerFromContext(cmd.Context()).Debug("configuration loaded",
		"file", o.configPath, "fill", cfg.Fill, "shading", cfg.Shading, "model", cfg.Model)
	return cfg, nil
}

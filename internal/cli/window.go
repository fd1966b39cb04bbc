package cli

import (
	"github.com/spf13/cobra"
	"github.com/taigrr/blocky/internal/app"
	"github.com/taigrr/blocky/internal/window"
)

func newWindowCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Render in a desktop window with mouse-driven sliders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			driver, controls, err := app.NewFromConfig(cfg, logger)
			if err != nil {
				return err
			}
			logger.Info("opening window", "width", cfg.Width, "height", cfg.Height, "fps", cfg.FPS)
			return window.Run(driver, controls, cfg.Width, cfg.Height, cfg.FPS)
		},
	}
}

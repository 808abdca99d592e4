package main

import (
	"image"
	"log/slog"
	"os"

	"gioui.org/app"
	"github.com/spf13/cobra"

	"github.com/gogpu/ggcomp"
	"github.com/gogpu/ggcomp/integration/giowindow"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive canvas window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		setupLogging(cfg)

		w := giowindow.New("ggcomp", image.Pt(cfg.Window.Width, cfg.Window.Height))
		go func() {
			err := w.Run(
				ggcomp.WithDriver(cfg.Driver),
				ggcomp.WithDebugDevice(cfg.Debug),
			)
			if err != nil {
				slog.Error("ggcomp: window failed", "error", err)
				os.Exit(1)
			}
			os.Exit(0)
		}()
		app.Main()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

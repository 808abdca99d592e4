package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/ggcomp"
	_ "github.com/gogpu/ggcomp/backend/wgpu" // Register the GPU driver.
	"github.com/gogpu/ggcomp/internal/config"
)

var (
	configPath string
	driverFlag string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "ggcomp",
	Short: "Draggable circles on a composition visual tree",
	Long: `ggcomp renders draggable circles through a retained visual tree and
recovers from graphics-device loss.

In the window, Ctrl+click (Cmd+click on macOS) creates a circle; click and
drag moves one to the front and drags it.

Examples:
  ggcomp run --driver software
  ggcomp replay testdata/drag.yaml -o drag.png --stats
  ggcomp drivers`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/ggcomp/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "compositor driver (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable the driver debug device and debug logging")
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("driver") {
		cfg.Driver = driverFlag
	}
	if debugFlag {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging installs a text logger at the configured level.
func setupLogging(cfg *config.Config) {
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(l)
	ggcomp.SetLogger(l)
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/gogpu/ggcomp"
	"github.com/gogpu/ggcomp/backend"
	"github.com/gogpu/ggcomp/compositor"
	"github.com/gogpu/ggcomp/integration/headless"
	"github.com/gogpu/ggcomp/internal/config"
)

var (
	replayOutput string
	replayStats  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Replay an event script headless and save the last frame",
	Long: `Replay drives a canvas with a YAML event script and writes the last
presented frame as PNG. The software driver is used unless --driver is given.

Events: create, down, move, up (x, y in physical pixels), paint,
dpi (dpi), lose-device.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		setupLogging(cfg)

		driver := backend.DriverSoftware
		if cmd.Flags().Changed("driver") {
			driver = cfg.Driver
		}
		return replay(cmd.OutOrStdout(), replayOptions{
			script: args[0],
			output: replayOutput,
			driver: driver,
			window: cfg.Window,
			debug:  cfg.Debug,
			stats:  replayStats,
		})
	},
}

func init() {
	replayCmd.Flags().StringVarP(&replayOutput, "output", "o", "frame.png", "output PNG file")
	replayCmd.Flags().BoolVar(&replayStats, "stats", false, "print device statistics")
	rootCmd.AddCommand(replayCmd)
}

type replayOptions struct {
	script string
	output string
	driver string
	window config.Window
	debug  bool
	stats  bool
}

// hostedDriver is implemented by drivers whose hardware devices are
// software devices, which can simulate device loss.
type hostedDriver interface {
	LastDevice() *backend.SoftwareDevice
}

func replay(out io.Writer, opts replayOptions) error {
	f, err := os.Open(opts.script)
	if err != nil {
		return err
	}
	script, err := headless.ParseScript(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", opts.script, err)
	}

	driver, err := backend.Open(opts.driver)
	if err != nil {
		return err
	}

	w := headless.NewWindow(ggcomp.UniformDPI(script.DPI))
	c, err := ggcomp.NewCanvas(w,
		ggcomp.WithDriverInstance(driver),
		ggcomp.WithWindowSize(opts.window.Width, opts.window.Height),
		ggcomp.WithDebugDevice(opts.debug),
	)
	if err != nil {
		return err
	}
	defer c.Release()
	if err := c.OnCreate(); err != nil {
		return err
	}
	c.OnPaint()

	p := &headless.Player{Canvas: c, Window: w}
	if hd, ok := driver.(hostedDriver); ok {
		p.LoseDevice = func() error {
			dev := hd.LastDevice()
			if dev == nil {
				return errors.New("no device to lose")
			}
			dev.Remove(compositor.StatusDeviceRemoved)
			return nil
		}
	}
	if err := p.Play(script); err != nil {
		return err
	}

	frame := w.Frame()
	if frame == nil {
		return errors.New("replay: no frame was presented")
	}
	if err := gg.FromImage(frame).SavePNG(opts.output); err != nil {
		return fmt.Errorf("replay: save %s: %w", opts.output, err)
	}

	if opts.stats {
		fmt.Fprintf(out, "driver:  %s\n", driver.Name())
		fmt.Fprintf(out, "dpi:     %v\n", c.DPI().X)
		fmt.Fprintf(out, "live:    %v\n", c.IsDeviceLive())
		fmt.Fprintf(out, "shapes:  %d\n", len(c.Shapes()))
		fmt.Fprintf(out, "frames:  %d\n", w.Frames())
		if hd, ok := driver.(hostedDriver); ok {
			if dev := hd.LastDevice(); dev != nil {
				st := dev.Stats()
				fmt.Fprintf(out, "devices: %d\n", dev.ID())
				fmt.Fprintf(out, "commits: %d (last device)\n", st.Commits)
			}
		}
	}
	fmt.Fprintf(out, "wrote %s (%dx%d)\n", opts.output, frame.Bounds().Dx(), frame.Bounds().Dy())
	return nil
}

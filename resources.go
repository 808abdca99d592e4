package ggcomp

import (
	"image/color"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggcomp/compositor"
)

// Shape appearance.
var (
	fillColor   = color.NRGBA{R: 0, G: 128, B: 255, A: 204}
	strokeColor = color.White
)

const strokeWidth = 1

// IsDeviceLive reports whether device resources exist.
func (c *Canvas) IsDeviceLive() bool {
	return c.hw != nil
}

func (c *Canvas) deviceOptions() compositor.DeviceOptions {
	o := compositor.DefaultDeviceOptions()
	o.Debug = c.opts.debug
	return o
}

// createDeviceResources builds the device chain, the shape bitmap and one
// visual per shape, then commits once. On failure no device is left live.
func (c *Canvas) createDeviceResources() (err error) {
	if c.IsDeviceLive() {
		return nil
	}
	defer func() {
		if err != nil {
			c.releaseDeviceResources()
		}
	}()

	hw, err := c.driver.CreateHardwareDevice(c.deviceOptions())
	if err := hr("CreateHardwareDevice", err); err != nil {
		return err
	}
	c.hw = hw

	if c.device, err = hw.CreateDevice(); err != nil {
		return hr("CreateDevice", err)
	}
	if c.target, err = c.device.CreateTarget(c.host, true); err != nil {
		return hr("CreateTarget", err)
	}
	if c.root, err = c.device.CreateVisual(); err != nil {
		return hr("CreateVisual", err)
	}
	if err := hr("SetRoot", c.target.SetRoot(c.root)); err != nil {
		return err
	}
	if err := c.createScaledResources(); err != nil {
		return err
	}

	// Each attach lands on top, so walking back to front reproduces the
	// registry order.
	for s := range c.shapes.backToFront() {
		if err := c.createVisual(s); err != nil {
			return err
		}
		if err := c.attach(s); err != nil {
			return err
		}
	}

	if err := hr("Commit", c.device.Commit()); err != nil {
		return err
	}
	Logger().Info("ggcomp: device resources created",
		"driver", c.driver.Name(), "shapes", c.shapes.Len(), "dpi", c.dpi.X)
	return nil
}

// createScaledResources draws the shape bitmap for the current DPI.
func (c *Canvas) createScaledResources() error {
	width := physicalPixels(ShapeSize, c.dpi.X)
	height := physicalPixels(ShapeSize, c.dpi.Y)

	surface, err := c.device.CreateSurface(width, height,
		gputypes.TextureFormatBGRA8Unorm, compositor.AlphaModePremultiplied)
	if err != nil {
		return hr("CreateSurface", err)
	}

	dc, offset, err := surface.BeginDraw()
	if err != nil {
		return hr("BeginDraw", err)
	}
	dc.SetDPI(c.dpi.X, c.dpi.Y)
	dc.SetTransform(gg.Translate(
		float64(ToLogical(float32(offset.X), c.dpi.X)),
		float64(ToLogical(float32(offset.Y), c.dpi.Y)),
	))
	dc.Clear(color.Transparent)
	dc.FillGeometry(c.geometry, fillColor)
	dc.DrawGeometry(c.geometry, strokeColor, strokeWidth)
	if err := hr("EndDraw", surface.EndDraw()); err != nil {
		return err
	}

	c.bitmap = surface
	Logger().Debug("ggcomp: shape bitmap drawn", "width", width, "height", height)
	return nil
}

// releaseDeviceResources drops the device chain. Shapes keep their
// positions but lose their visuals.
func (c *Canvas) releaseDeviceResources() {
	if c.hw == nil {
		return
	}
	c.hw.Release()
	c.hw = nil
	c.device = nil
	c.target = nil
	c.root = nil
	c.bitmap = nil
	for s := range c.shapes.frontToBack() {
		s.visual = nil
	}
	Logger().Debug("ggcomp: device resources released")
}

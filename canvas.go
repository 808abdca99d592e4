// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggcomp

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/gogpu/ggcomp/backend"
	"github.com/gogpu/ggcomp/compositor"
)

// Host is the platform shell a Canvas runs in. All methods are called on
// the goroutine that delivers events to the canvas.
type Host interface {
	compositor.Window

	// MonitorDPI returns the effective DPI of the monitor showing the window.
	MonitorDPI() (DPI, error)

	// ResizeClient resizes the window so its client area is size physical
	// pixels, keeping the window position.
	ResizeClient(size image.Point) error

	// PlaceClient moves the window to origin and resizes its client area.
	PlaceClient(origin, size image.Point) error

	// SetCapture routes all pointer input to the window until
	// ReleaseCapture.
	SetCapture()
	ReleaseCapture()

	// Invalidate requests a paint.
	Invalidate()
}

// Modifiers is a set of keyboard modifiers held during a pointer event.
type Modifiers uint8

// ModCommand is the modifier that creates a shape (Ctrl, or Cmd on macOS).
const ModCommand Modifiers = 1 << 0

// Contain reports whether m contains all modifiers in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

// PointerEvent is a pointer notification in physical client coordinates.
type PointerEvent struct {
	Position  image.Point
	Modifiers Modifiers
}

// Canvas is an interactive composition canvas.
//
// Canvas is NOT safe for concurrent use. Every handler must be called from
// the goroutine that owns the host window.
type Canvas struct {
	host     Host
	opts     options
	driver   compositor.Driver
	geometry *GeometryCache
	dpi      DPI
	shapes   registry

	// Device chain. hw is nil while there is no device.
	hw     compositor.HardwareDevice
	device compositor.Device
	target compositor.Target
	root   compositor.Visual
	bitmap compositor.Surface

	selected *Shape
	// anchor is the pointer position within the selected shape, in
	// logical units.
	anchor gg.Point
}

// NewCanvas creates a canvas for host. It builds the device-independent
// resources; device resources are created on the first OnPaint.
func NewCanvas(host Host, opts ...Option) (*Canvas, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.windowSize.X <= 0 || o.windowSize.Y <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidWindowSize, o.windowSize.X, o.windowSize.Y)
	}

	c := &Canvas{
		host: host,
		opts: o,
		dpi:  UniformDPI(DefaultDPI),
	}
	if err := c.createDeviceIndependentResources(); err != nil {
		return nil, err
	}
	return c, nil
}

// driverProviderSetter is implemented by drivers that can share a host
// GPU device.
type driverProviderSetter interface {
	SetDeviceProvider(provider any) error
}

// createDeviceIndependentResources resolves the driver and builds the
// geometry cache.
func (c *Canvas) createDeviceIndependentResources() error {
	d := c.opts.driver
	if d == nil {
		var err error
		d, err = backend.Open(c.opts.driverName)
		if err != nil {
			return fmt.Errorf("ggcomp: %w", err)
		}
	}

	if p := c.opts.provider; p != nil {
		// Sharing is best effort: without it each side opens its own device.
		if err := gg.SetAcceleratorDeviceProvider(p); err != nil {
			Logger().Debug("ggcomp: gg accelerator does not share device", "error", err)
		}
		if ps, ok := d.(driverProviderSetter); ok {
			if err := ps.SetDeviceProvider(p); err != nil {
				Logger().Warn("ggcomp: driver rejected device provider", "driver", d.Name(), "error", err)
			}
		}
	}

	c.driver = d
	c.geometry = NewGeometryCache()
	Logger().Debug("ggcomp: device-independent resources created", "driver", d.Name())
	return nil
}

// Driver returns the driver the canvas renders with.
func (c *Canvas) Driver() compositor.Driver {
	return c.driver
}

// DPI returns the current DPI.
func (c *Canvas) DPI() DPI {
	return c.dpi
}

// Shapes returns all shapes, frontmost first.
func (c *Canvas) Shapes() []ShapeInfo {
	out := make([]ShapeInfo, 0, c.shapes.Len())
	for s := range c.shapes.frontToBack() {
		out = append(out, s.info())
	}
	return out
}

// Selected returns the shape being dragged, if any.
func (c *Canvas) Selected() (ShapeInfo, bool) {
	if c.selected == nil {
		return ShapeInfo{}, false
	}
	return c.selected.info(), true
}

// Release drops all device resources. The canvas stays usable; the next
// OnPaint rebuilds them.
func (c *Canvas) Release() {
	c.releaseDeviceResources()
}

// OnCreate adopts the monitor DPI and sizes the client area to the
// logical window size.
func (c *Canvas) OnCreate() error {
	dpi, err := c.host.MonitorDPI()
	if err != nil {
		return fmt.Errorf("ggcomp: monitor DPI: %w", err)
	}
	if !dpi.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidDPI, dpi)
	}
	c.dpi = dpi

	size := image.Pt(
		physicalPixels(float32(c.opts.windowSize.X), dpi.X),
		physicalPixels(float32(c.opts.windowSize.Y), dpi.Y),
	)
	if err := c.host.ResizeClient(size); err != nil {
		return fmt.Errorf("ggcomp: resize client: %w", err)
	}
	Logger().Info("ggcomp: window created", "dpi", dpi.X, "client", size)
	return nil
}

// OnDPIChanged adopts dpi, keeps the logical client size and moves the
// window to the origin of suggested. A live device regenerates the
// shape bitmap and repositions every visual in one commit.
func (c *Canvas) OnDPIChanged(dpi DPI, suggested image.Rectangle) {
	if !dpi.Valid() {
		Logger().Warn("ggcomp: ignoring invalid DPI", "dpi", dpi)
		return
	}
	prev := c.dpi
	c.dpi = dpi

	client := c.host.ClientSize()
	size := image.Pt(
		physicalPixels(ToLogical(float32(client.X), prev.X), dpi.X),
		physicalPixels(ToLogical(float32(client.Y), prev.Y), dpi.Y),
	)
	if err := c.host.PlaceClient(suggested.Min, size); err != nil {
		Logger().Warn("ggcomp: place client failed", "error", err)
	}
	Logger().Info("ggcomp: DPI changed", "from", prev.X, "to", dpi.X, "client", size)

	if !c.IsDeviceLive() {
		return
	}
	if err := c.rescale(); err != nil {
		c.fail("dpi changed", err, true)
	}
}

// OnPaint verifies a live device or rebuilds a missing one. Failures
// release the device and wait for the next paint.
func (c *Canvas) OnPaint() {
	var err error
	if c.IsDeviceLive() {
		err = hr("RemovedReason", c.hw.RemovedReason())
	} else {
		err = c.createDeviceResources()
	}
	if err != nil {
		c.fail("paint", err, false)
	}
}

// fail logs a handler failure and drops the device. Handlers other than
// paint request a repaint so the device is rebuilt.
func (c *Canvas) fail(handler string, err error, invalidate bool) {
	Logger().Warn("ggcomp: handler failed",
		"handler", handler,
		"status", fmt.Sprintf("0x%X", uint32(StatusOf(err))),
		"error", err)
	c.releaseDeviceResources()
	if invalidate {
		c.host.Invalidate()
	}
}

package ggcomp

import (
	"image"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggcomp/compositor"
)

// Default logical window size.
const (
	DefaultWindowWidth  = 600
	DefaultWindowHeight = 400
)

// Option configures a Canvas during creation.
//
// Example:
//
//	c, err := ggcomp.NewCanvas(host,
//	    ggcomp.WithDriver("software"),
//	    ggcomp.WithWindowSize(800, 600),
//	)
type Option func(*options)

type options struct {
	driverName string
	driver     compositor.Driver
	windowSize image.Point
	debug      bool
	provider   gpucontext.DeviceProvider
}

func defaultOptions() options {
	return options{
		windowSize: image.Pt(DefaultWindowWidth, DefaultWindowHeight),
	}
}

// WithDriver selects a registered driver by name. An empty name or "auto"
// selects the highest-priority available driver.
func WithDriver(name string) Option {
	return func(o *options) {
		o.driverName = name
	}
}

// WithDriverInstance uses d instead of looking a driver up in the
// registry. It takes precedence over WithDriver.
func WithDriverInstance(d compositor.Driver) Option {
	return func(o *options) {
		o.driver = d
	}
}

// WithWindowSize sets the client area size in logical units.
func WithWindowSize(width, height int) Option {
	return func(o *options) {
		o.windowSize = image.Pt(width, height)
	}
}

// WithDebugDevice sets DeviceOptions.Debug on hardware device requests.
// Drivers use it for diagnostics only; neither built-in driver enables
// API validation layers.
func WithDebugDevice(on bool) Option {
	return func(o *options) {
		o.debug = on
	}
}

// WithDeviceProvider shares a host GPU device with gg and with drivers
// that accept one (such as the wgpu driver).
func WithDeviceProvider(p gpucontext.DeviceProvider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
)

// Driver creates hardware devices. Drivers are registered by name in the
// backend package and selected by priority.
type Driver interface {
	// Name returns the driver identifier (e.g., "software", "wgpu").
	Name() string

	// CreateHardwareDevice creates a rasterization device.
	// Options the driver cannot honour fail with StatusUnsupported.
	CreateHardwareDevice(opts DeviceOptions) (HardwareDevice, error)
}

// DeviceOptions describes the hardware device a canvas needs.
type DeviceOptions struct {
	// Hardware requests a hardware-accelerated device.
	Hardware bool

	// SingleThreaded promises that the device is only used from one
	// goroutine, allowing the driver to skip internal locking.
	SingleThreaded bool

	// BGRASupport requires premultiplied BGRA surfaces.
	BGRASupport bool

	// Debug enables driver validation and diagnostics.
	Debug bool
}

// DefaultDeviceOptions returns the options a composition canvas uses.
func DefaultDeviceOptions() DeviceOptions {
	return DeviceOptions{
		Hardware:       true,
		SingleThreaded: true,
		BGRASupport:    true,
	}
}

// HardwareDevice is the root of the device chain.
type HardwareDevice interface {
	// RemovedReason returns nil while the device is healthy and a
	// *StatusError describing the loss otherwise.
	RemovedReason() error

	// CreateDevice wraps the hardware device as a compositor-compatible
	// device and creates the compositor device on top of it.
	CreateDevice() (Device, error)

	// Release drops the device. Every object created beneath it becomes
	// invalid. Release is idempotent.
	Release()
}

// AlphaMode describes how a surface's alpha channel is interpreted.
type AlphaMode uint8

const (
	// AlphaModePremultiplied stores color channels multiplied by alpha.
	AlphaModePremultiplied AlphaMode = iota

	// AlphaModeIgnore treats the surface as opaque.
	AlphaModeIgnore
)

// Device is the compositor device.
type Device interface {
	// CreateTarget binds a composition target to the window surface.
	// When topmost is true the target renders above any other content of
	// the window.
	CreateTarget(w Window, topmost bool) (Target, error)

	// CreateVisual allocates a new, empty, detached visual.
	CreateVisual() (Visual, error)

	// CreateSurface creates an off-screen drawable surface of the given
	// size in physical pixels.
	CreateSurface(width, height int, format gputypes.TextureFormat, alpha AlphaMode) (Surface, error)

	// Commit publishes all staged visual-tree changes atomically.
	Commit() error
}

// Target binds a visual tree to a window.
type Target interface {
	// SetRoot sets the root visual. Pass nil to detach.
	SetRoot(root Visual) error
}

// Visual is a retained node of the composition tree.
type Visual interface {
	// SetOffsetX sets the horizontal offset relative to the parent, in
	// physical pixels.
	SetOffsetX(x float32) error

	// SetOffsetY sets the vertical offset relative to the parent, in
	// physical pixels.
	SetOffsetY(y float32) error

	// SetContent sets the bitmap drawn by this visual. Several visuals may
	// share one Surface.
	SetContent(s Surface) error

	// AddVisual attaches child to this visual. See the package
	// documentation for the stacking rules of insertAbove and ref.
	AddVisual(child Visual, insertAbove bool, ref Visual) error

	// RemoveVisual detaches child from this visual.
	RemoveVisual(child Visual) error
}

// Surface is an off-screen drawable bitmap used as visual content.
type Surface interface {
	// Width returns the surface width in physical pixels.
	Width() int

	// Height returns the surface height in physical pixels.
	Height() int

	// BeginDraw starts a draw pass. The returned offset locates the
	// surface's pixels inside the driver's backing store; callers must
	// compensate for it in their transform.
	BeginDraw() (DrawContext, image.Point, error)

	// EndDraw finishes the current draw pass and makes the drawing
	// available as content.
	EndDraw() error
}

// DrawContext draws into a Surface during a draw pass.
// Coordinates are in logical units, scaled by the DPI set with SetDPI.
// Drawing failures are deferred and reported by Surface.EndDraw.
type DrawContext interface {
	// SetDPI sets the drawing DPI. 96 maps one logical unit to one pixel.
	SetDPI(dpiX, dpiY float32)

	// SetTransform sets the logical-space transform applied before the
	// DPI scale.
	SetTransform(m gg.Matrix)

	// Clear fills the whole pass area with c, ignoring the transform.
	Clear(c color.Color)

	// FillGeometry fills g with c.
	FillGeometry(g Geometry, c color.Color)

	// DrawGeometry strokes the outline of g with c.
	// width is in logical units.
	DrawGeometry(g Geometry, c color.Color, width float64)
}

// Geometry is a device-independent outline.
type Geometry interface {
	// AppendPath appends the outline to the current path of dc using the
	// context's transform.
	AppendPath(dc *gg.Context)
}

// Window is the platform surface a Target binds to.
type Window interface {
	// ClientSize returns the client area in physical pixels.
	ClientSize() image.Point

	// Present shows a composed frame. The window takes ownership of
	// frame; drivers never write to a presented frame again.
	Present(frame *image.RGBA)
}

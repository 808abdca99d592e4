// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package headless

import (
	"image"

	"github.com/gogpu/ggcomp"
)

// Window is an in-memory ggcomp.Host.
//
// Window is NOT safe for concurrent use.
type Window struct {
	origin   image.Point
	size     image.Point
	dpi      ggcomp.DPI
	last     *image.RGBA
	frames   int
	captured bool
	dirty    bool
}

// NewWindow creates a window on a monitor with the given DPI.
func NewWindow(dpi ggcomp.DPI) *Window {
	return &Window{dpi: dpi}
}

// ClientSize implements compositor.Window.
func (w *Window) ClientSize() image.Point { return w.size }

// Present implements compositor.Window.
func (w *Window) Present(frame *image.RGBA) {
	w.last = frame
	w.frames++
}

// MonitorDPI implements ggcomp.Host.
func (w *Window) MonitorDPI() (ggcomp.DPI, error) { return w.dpi, nil }

// ResizeClient implements ggcomp.Host.
func (w *Window) ResizeClient(size image.Point) error {
	w.size = size
	return nil
}

// PlaceClient implements ggcomp.Host.
func (w *Window) PlaceClient(origin, size image.Point) error {
	w.origin, w.size = origin, size
	return nil
}

// SetCapture implements ggcomp.Host.
func (w *Window) SetCapture() { w.captured = true }

// ReleaseCapture implements ggcomp.Host.
func (w *Window) ReleaseCapture() { w.captured = false }

// Invalidate implements ggcomp.Host.
func (w *Window) Invalidate() { w.dirty = true }

// MoveToMonitor changes the monitor DPI and returns the rectangle a
// platform would suggest for the window at that DPI.
func (w *Window) MoveToMonitor(dpi ggcomp.DPI) image.Rectangle {
	prev := w.dpi
	w.dpi = dpi
	size := image.Pt(
		int(ggcomp.ToPhysical(ggcomp.ToLogical(float32(w.size.X), prev.X), dpi.X)),
		int(ggcomp.ToPhysical(ggcomp.ToLogical(float32(w.size.Y), prev.Y), dpi.Y)),
	)
	return image.Rectangle{Min: w.origin, Max: w.origin.Add(size)}
}

// Frame returns the last presented frame, or nil.
func (w *Window) Frame() *image.RGBA { return w.last }

// Frames returns the number of presented frames.
func (w *Window) Frames() int { return w.frames }

// Origin returns the window position.
func (w *Window) Origin() image.Point { return w.origin }

// Captured reports whether the pointer is captured.
func (w *Window) Captured() bool { return w.captured }

// TakeInvalidation reports and clears a pending repaint request.
func (w *Window) TakeInvalidation() bool {
	d := w.dirty
	w.dirty = false
	return d
}

var _ ggcomp.Host = (*Window)(nil)

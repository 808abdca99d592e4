// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package giowindow

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"

	"github.com/gogpu/ggcomp"
)

var background = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Window is a Gio-backed ggcomp.Host.
type Window struct {
	title   string
	logical image.Point

	w        *app.Window
	canvas   *ggcomp.Canvas
	size     image.Point
	pxPerDp  float32
	frame    *image.RGBA
	captured bool
}

// New creates a window with the given title and logical client size.
func New(title string, logical image.Point) *Window {
	return &Window{title: title, logical: logical, pxPerDp: 1}
}

// ClientSize implements compositor.Window.
func (w *Window) ClientSize() image.Point { return w.size }

// Present implements compositor.Window. The frame is drawn by the
// current or next Gio frame.
func (w *Window) Present(frame *image.RGBA) {
	w.frame = frame
}

// MonitorDPI implements ggcomp.Host.
func (w *Window) MonitorDPI() (ggcomp.DPI, error) {
	return dpiFromScale(w.pxPerDp), nil
}

// ResizeClient implements ggcomp.Host.
func (w *Window) ResizeClient(size image.Point) error {
	w.w.Option(app.Size(w.toDp(size.X), w.toDp(size.Y)))
	return nil
}

// PlaceClient implements ggcomp.Host. The origin is ignored.
func (w *Window) PlaceClient(_, size image.Point) error {
	return w.ResizeClient(size)
}

// SetCapture implements ggcomp.Host.
func (w *Window) SetCapture() { w.captured = true }

// ReleaseCapture implements ggcomp.Host.
func (w *Window) ReleaseCapture() { w.captured = false }

// Invalidate implements ggcomp.Host.
func (w *Window) Invalidate() { w.w.Invalidate() }

func (w *Window) toDp(px int) unit.Dp {
	return unit.Dp(float32(px) / w.pxPerDp)
}

// Run opens the window and processes events until it is closed.
func (w *Window) Run(opts ...ggcomp.Option) error {
	w.w = new(app.Window)
	w.w.Option(
		app.Title(w.title),
		app.Size(unit.Dp(w.logical.X), unit.Dp(w.logical.Y)),
	)

	opts = append([]ggcomp.Option{ggcomp.WithWindowSize(w.logical.X, w.logical.Y)}, opts...)
	c, err := ggcomp.NewCanvas(w, opts...)
	if err != nil {
		return err
	}
	defer c.Release()
	w.canvas = c

	var ops op.Ops
	created := false
	for {
		switch e := w.w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			w.size = e.Size

			if !created {
				w.pxPerDp = e.Metric.PxPerDp
				if err := c.OnCreate(); err != nil {
					return fmt.Errorf("giowindow: create: %w", err)
				}
				created = true
			} else if e.Metric.PxPerDp != w.pxPerDp {
				w.pxPerDp = e.Metric.PxPerDp
				c.OnDPIChanged(dpiFromScale(w.pxPerDp), image.Rectangle{Max: e.Size})
			}

			w.dispatchPointer(gtx.Source)
			c.OnPaint()

			paint.Fill(gtx.Ops, background)
			if w.frame != nil {
				paint.NewImageOp(w.frame).Add(gtx.Ops)
				paint.PaintOp{}.Add(gtx.Ops)
			}
			area := clip.Rect{Max: e.Size}.Push(gtx.Ops)
			event.Op(gtx.Ops, w)
			area.Pop()

			e.Frame(gtx.Ops)
		}
	}
}

// dispatchPointer forwards queued pointer events to the canvas.
func (w *Window) dispatchPointer(src interface {
	Event(filters ...event.Filter) (event.Event, bool)
}) {
	for {
		ev, ok := src.Event(pointer.Filter{
			Target: w,
			Kinds:  pointer.Press | pointer.Drag | pointer.Move | pointer.Release | pointer.Cancel,
		})
		if !ok {
			return
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			if pe.Buttons == pointer.ButtonPrimary {
				w.canvas.OnPointerDown(toPointerEvent(pe))
			}
		case pointer.Drag, pointer.Move:
			w.canvas.OnPointerMove(toPointerEvent(pe))
		case pointer.Release, pointer.Cancel:
			if w.captured {
				w.canvas.OnPointerUp(toPointerEvent(pe))
			}
		}
	}
}

// dpiFromScale converts Gio's pixels-per-dp to DPI.
func dpiFromScale(pxPerDp float32) ggcomp.DPI {
	if pxPerDp <= 0 {
		pxPerDp = 1
	}
	return ggcomp.UniformDPI(pxPerDp * ggcomp.DefaultDPI)
}

func toPointerEvent(pe pointer.Event) ggcomp.PointerEvent {
	e := ggcomp.PointerEvent{
		Position: image.Pt(int(pe.Position.X), int(pe.Position.Y)),
	}
	if pe.Modifiers.Contain(key.ModShortcut) {
		e.Modifiers |= ggcomp.ModCommand
	}
	return e
}

var _ ggcomp.Host = (*Window)(nil)

package ggcomp

import (
	"github.com/gogpu/gg"
)

// OnPointerDown creates a shape when ModCommand is held, otherwise selects
// the frontmost shape under the pointer and brings it to front.
//
// Without a live device the registry is still updated and, when a shape
// was created or selected, a repaint is requested so the visuals appear
// once the device is rebuilt.
func (c *Canvas) OnPointerDown(e PointerEvent) {
	var err error
	hit := true
	if e.Modifiers.Contain(ModCommand) {
		err = c.createShape(e.Position.X, e.Position.Y)
	} else {
		hit, err = c.selectAt(e.Position.X, e.Position.Y)
	}
	if err == nil {
		err = c.commit()
	}
	if err != nil {
		c.fail("pointer down", err, true)
		return
	}
	if hit && !c.IsDeviceLive() {
		c.host.Invalidate()
	}
}

// createShape adds a frontmost shape centered on the physical point
// (px, py) and starts dragging it. The shape joins the registry only
// once its visual is attached.
func (c *Canvas) createShape(px, py int) error {
	x := ToLogical(float32(px), c.dpi.X) - ShapeCenter
	y := ToLogical(float32(py), c.dpi.Y) - ShapeCenter
	s := &Shape{x: x, y: y}

	if c.IsDeviceLive() {
		if err := c.createVisual(s); err != nil {
			return err
		}
		if err := c.attach(s); err != nil {
			return err
		}
	}

	c.shapes.insertFront(s)
	c.host.SetCapture()
	c.selected = s
	c.anchor = gg.Point{X: ShapeCenter, Y: ShapeCenter}
	Logger().Debug("ggcomp: shape created", "id", s.id, "x", x, "y", y)
	return nil
}

// selectAt hit-tests shapes front to back at the physical point (px, py)
// and reports whether a shape was selected.
func (c *Canvas) selectAt(px, py int) (bool, error) {
	scale := c.dpi.Scale()
	for s := range c.shapes.frontToBack() {
		p := gg.Point{
			X: float64(float32(px) - ToPhysical(s.x, c.dpi.X)),
			Y: float64(float32(py) - ToPhysical(s.y, c.dpi.Y)),
		}
		if !c.geometry.FillContainsPoint(p, scale) {
			continue
		}
		if err := c.bringToFront(s); err != nil {
			return false, err
		}
		c.host.SetCapture()
		c.selected = s
		c.anchor = gg.Point{
			X: float64(ToLogical(float32(p.X), c.dpi.X)),
			Y: float64(ToLogical(float32(p.Y), c.dpi.Y)),
		}
		return true, nil
	}
	return false, nil
}

// OnPointerMove drags the selected shape so the anchor stays under the
// pointer.
func (c *Canvas) OnPointerMove(e PointerEvent) {
	s := c.selected
	if s == nil {
		return
	}
	s.x = ToLogical(float32(e.Position.X), c.dpi.X) - float32(c.anchor.X)
	s.y = ToLogical(float32(e.Position.Y), c.dpi.Y) - float32(c.anchor.Y)

	if !c.IsDeviceLive() {
		return
	}
	err := c.updateVisualOffset(s)
	if err == nil {
		err = c.commit()
	}
	if err != nil {
		c.fail("pointer move", err, true)
	}
}

// OnPointerUp ends a drag.
func (c *Canvas) OnPointerUp(PointerEvent) {
	c.host.ReleaseCapture()
	c.selected = nil
}

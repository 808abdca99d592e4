package ggcomp

// createVisual allocates a detached visual for s.
func (c *Canvas) createVisual(s *Shape) error {
	v, err := c.device.CreateVisual()
	if err != nil {
		return hr("CreateVisual", err)
	}
	s.visual = v
	return nil
}

// attach shows the shape bitmap in s's visual, adds it on top of the root's
// children and positions it.
func (c *Canvas) attach(s *Shape) error {
	if err := hr("SetContent", s.visual.SetContent(c.bitmap)); err != nil {
		return err
	}
	if err := hr("AddVisual", c.root.AddVisual(s.visual, false, nil)); err != nil {
		return err
	}
	return c.updateVisualOffset(s)
}

// updateVisualOffset moves s's visual to its logical position at the
// current DPI.
func (c *Canvas) updateVisualOffset(s *Shape) error {
	if err := hr("SetOffsetX", s.visual.SetOffsetX(ToPhysical(s.x, c.dpi.X))); err != nil {
		return err
	}
	return hr("SetOffsetY", s.visual.SetOffsetY(ToPhysical(s.y, c.dpi.Y)))
}

// bringToFront restacks s's visual on top and makes s frontmost in the
// registry.
func (c *Canvas) bringToFront(s *Shape) error {
	if s.visual != nil {
		if err := hr("RemoveVisual", c.root.RemoveVisual(s.visual)); err != nil {
			return err
		}
		if err := hr("AddVisual", c.root.AddVisual(s.visual, false, nil)); err != nil {
			return err
		}
	}
	c.shapes.moveToFront(s)
	return nil
}

// rescale redraws the shape bitmap for the current DPI and repoints and
// repositions every visual, then commits once.
func (c *Canvas) rescale() error {
	if err := c.createScaledResources(); err != nil {
		return err
	}
	for s := range c.shapes.frontToBack() {
		if err := hr("SetContent", s.visual.SetContent(c.bitmap)); err != nil {
			return err
		}
		if err := c.updateVisualOffset(s); err != nil {
			return err
		}
	}
	return hr("Commit", c.device.Commit())
}

// commit publishes staged changes if the device is live.
func (c *Canvas) commit() error {
	if !c.IsDeviceLive() {
		return nil
	}
	return hr("Commit", c.device.Commit())
}

package backend

import (
	"slices"

	"github.com/gogpu/ggcomp/compositor"
)

// softVisual is a node of a staged visual tree.
// Children are ordered back to front.
type softVisual struct {
	dev      *softDevice
	id       int
	parent   *softVisual
	children []*softVisual
	offsetX  float32
	offsetY  float32
	content  *softSurface
	rooted   *softTarget
}

// own converts v to a visual of the same device.
func (c *softDevice) own(op string, v compositor.Visual) (*softVisual, error) {
	sv, ok := v.(*softVisual)
	if !ok || sv == nil || sv.dev != c {
		return nil, compositor.Errorf(compositor.StatusInvalidArg, "%s: visual from another device", op)
	}
	return sv, nil
}

func (v *softVisual) SetOffsetX(x float32) error {
	if err := v.dev.hw.check(OpSetOffset); err != nil {
		return err
	}
	v.offsetX = x
	return nil
}

func (v *softVisual) SetOffsetY(y float32) error {
	if err := v.dev.hw.check(OpSetOffset); err != nil {
		return err
	}
	v.offsetY = y
	return nil
}

func (v *softVisual) SetContent(s compositor.Surface) error {
	if err := v.dev.hw.check(OpSetContent); err != nil {
		return err
	}
	if s == nil {
		v.content = nil
		return nil
	}
	ss, ok := s.(*softSurface)
	if !ok || ss.dev != v.dev {
		return compositor.Errorf(compositor.StatusInvalidArg, "SetContent: surface from another device")
	}
	v.content = ss
	return nil
}

// isAncestorOf reports whether v is c or one of c's ancestors.
func (v *softVisual) isAncestorOf(c *softVisual) bool {
	for p := c; p != nil; p = p.parent {
		if p == v {
			return true
		}
	}
	return false
}

func (v *softVisual) AddVisual(child compositor.Visual, insertAbove bool, ref compositor.Visual) error {
	if err := v.dev.hw.check(OpAddVisual); err != nil {
		return err
	}
	c, err := v.dev.own("AddVisual", child)
	if err != nil {
		return err
	}
	if c.parent != nil || c.rooted != nil {
		return compositor.Errorf(compositor.StatusInvalidArg, "AddVisual: visual %d already attached", c.id)
	}
	if c.isAncestorOf(v) {
		return compositor.Errorf(compositor.StatusInvalidArg, "AddVisual: visual %d would contain itself", c.id)
	}

	at := len(v.children)
	switch {
	case ref == nil && insertAbove:
		at = 0
	case ref != nil:
		r, err := v.dev.own("AddVisual", ref)
		if err != nil {
			return err
		}
		idx := slices.Index(v.children, r)
		if idx < 0 {
			return compositor.Errorf(compositor.StatusInvalidArg, "AddVisual: reference %d is not a child", r.id)
		}
		at = idx
		if insertAbove {
			at = idx + 1
		}
	}
	v.children = slices.Insert(v.children, at, c)
	c.parent = v
	return nil
}

func (v *softVisual) RemoveVisual(child compositor.Visual) error {
	if err := v.dev.hw.check(OpRemoveVisual); err != nil {
		return err
	}
	c, err := v.dev.own("RemoveVisual", child)
	if err != nil {
		return err
	}
	idx := slices.Index(v.children, c)
	if idx < 0 {
		return compositor.Errorf(compositor.StatusInvalidArg, "RemoveVisual: visual %d is not a child", c.id)
	}
	v.children = slices.Delete(v.children, idx, idx+1)
	c.parent = nil
	return nil
}

var _ compositor.Visual = (*softVisual)(nil)

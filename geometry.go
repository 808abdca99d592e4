package ggcomp

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
)

// Shape outline in logical units: a circle inside a ShapeSize box.
const (
	ShapeSize   = 100
	ShapeCenter = 50
	ShapeRadius = 49
)

// GeometryCache is the device-independent outline shared by rendering and
// hit-testing. It is created once and survives device loss.
type GeometryCache struct {
	ellipse *scene.EllipseShape
}

// NewGeometryCache returns the circle centered in the shape box.
func NewGeometryCache() *GeometryCache {
	return &GeometryCache{
		ellipse: scene.NewEllipseShape(ShapeCenter, ShapeCenter, ShapeRadius, ShapeRadius),
	}
}

// AppendPath implements compositor.Geometry.
func (g *GeometryCache) AppendPath(dc *gg.Context) {
	e := g.ellipse
	dc.DrawEllipse(float64(e.CX), float64(e.CY), float64(e.RX), float64(e.RY))
}

// FillContainsPoint reports whether p, given in the space produced by
// transform, lies inside the filled outline. transform must be
// invertible.
func (g *GeometryCache) FillContainsPoint(p gg.Point, transform gg.Matrix) bool {
	local := transform.Invert().TransformPoint(p)
	return g.ellipse.Contains(float32(local.X), float32(local.Y))
}

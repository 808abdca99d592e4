package ggcomp

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/gg"
)

// DefaultDPI is the DPI at which one logical unit is one physical pixel.
const DefaultDPI float32 = 96

// DPI is a per-axis display scale in dots per inch.
type DPI struct {
	X, Y float32
}

// UniformDPI returns a DPI with the same value on both axes.
func UniformDPI(v float32) DPI {
	return DPI{X: v, Y: v}
}

// Valid reports whether both axes are positive.
func (d DPI) Valid() bool {
	return d.X > 0 && d.Y > 0
}

// Scale returns the logical-to-physical scale transform.
func (d DPI) Scale() gg.Matrix {
	return gg.Scale(float64(d.X/DefaultDPI), float64(d.Y/DefaultDPI))
}

// ToPhysical converts a logical value to physical pixels at dpi.
func ToPhysical(value, dpi float32) float32 {
	return value * dpi / DefaultDPI
}

// ToLogical converts a physical value to logical units at dpi.
func ToLogical(value, dpi float32) float32 {
	return value * DefaultDPI / dpi
}

// physicalPixels converts a logical length to a whole number of pixels,
// truncating toward zero.
func physicalPixels(value, dpi float32) int {
	return int(math32.Trunc(ToPhysical(value, dpi)))
}

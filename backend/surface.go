package backend

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/ggcomp/compositor"
)

// softSurface is a bitmap shared as visual content.
type softSurface struct {
	dev    *softDevice
	id     int
	width  int
	height int
	format gputypes.TextureFormat
	alpha  compositor.AlphaMode
	origin image.Point

	// content holds the result of the last finished pass. Each pass
	// produces a new image so committed trees keep what they captured.
	content *image.RGBA
	pass    *drawContext
}

func (s *softSurface) Width() int  { return s.width }
func (s *softSurface) Height() int { return s.height }

// BeginDraw starts a pass over the whole surface. The pass starts
// transparent; previous content is not carried over.
func (s *softSurface) BeginDraw() (compositor.DrawContext, image.Point, error) {
	if err := s.dev.hw.check(OpBeginDraw); err != nil {
		return nil, image.Point{}, err
	}
	if s.pass != nil {
		return nil, image.Point{}, compositor.Errorf(compositor.StatusInvalidCall, "BeginDraw: pass already open")
	}
	dc := gg.NewContext(s.origin.X+s.width, s.origin.Y+s.height)
	s.pass = &drawContext{
		dc:        dc,
		bounds:    image.Rectangle{Min: s.origin, Max: s.origin.Add(image.Pt(s.width, s.height))},
		dpiX:      96,
		dpiY:      96,
		transform: gg.Identity(),
	}
	s.dev.hw.stats.DrawPasses++
	return s.pass, s.origin, nil
}

// EndDraw closes the pass and reports the first deferred drawing error.
func (s *softSurface) EndDraw() error {
	if err := s.dev.hw.check(OpEndDraw); err != nil {
		s.abandon()
		return err
	}
	if s.pass == nil {
		return compositor.Errorf(compositor.StatusInvalidCall, "EndDraw: no open pass")
	}
	pass := s.pass
	defer s.abandon()

	if pass.err != nil {
		return compositor.Errorf(compositor.StatusFail, "EndDraw: %v", pass.err)
	}

	out := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	draw.Draw(out, out.Bounds(), pass.dc.Image(), pass.bounds.Min, draw.Src)
	if s.alpha == compositor.AlphaModeIgnore {
		for i := 3; i < len(out.Pix); i += 4 {
			out.Pix[i] = 0xFF
		}
	}
	s.content = out
	return nil
}

func (s *softSurface) abandon() {
	if s.pass == nil {
		return
	}
	_ = s.pass.dc.Close()
	s.pass = nil
}

// drawContext runs one pass on a gg.Context.
type drawContext struct {
	dc        *gg.Context
	bounds    image.Rectangle
	dpiX      float32
	dpiY      float32
	transform gg.Matrix
	err       error
}

func (d *drawContext) SetDPI(dpiX, dpiY float32) {
	if dpiX <= 0 || dpiY <= 0 {
		d.fail(fmt.Errorf("invalid dpi %vx%v", dpiX, dpiY))
		return
	}
	d.dpiX, d.dpiY = dpiX, dpiY
}

func (d *drawContext) SetTransform(m gg.Matrix) {
	d.transform = m
}

// matrix maps logical units to backing-store pixels.
func (d *drawContext) matrix() gg.Matrix {
	return gg.Scale(float64(d.dpiX)/96, float64(d.dpiY)/96).Multiply(d.transform)
}

func (d *drawContext) Clear(c color.Color) {
	if c == nil {
		c = color.Transparent
	}
	d.dc.ClearWithColor(gg.FromColor(c))
}

func (d *drawContext) FillGeometry(g compositor.Geometry, c color.Color) {
	d.dc.ClearPath()
	d.dc.SetTransform(d.matrix())
	g.AppendPath(d.dc)
	d.dc.SetColor(c)
	if err := d.dc.Fill(); err != nil {
		d.fail(fmt.Errorf("fill: %w", err))
	}
}

func (d *drawContext) DrawGeometry(g compositor.Geometry, c color.Color, width float64) {
	d.dc.ClearPath()
	d.dc.SetTransform(d.matrix())
	g.AppendPath(d.dc)
	d.dc.SetColor(c)
	d.dc.SetLineWidth(width)
	if err := d.dc.Stroke(); err != nil {
		d.fail(fmt.Errorf("stroke: %w", err))
	}
}

func (d *drawContext) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

var (
	_ compositor.Surface     = (*softSurface)(nil)
	_ compositor.DrawContext = (*drawContext)(nil)
)

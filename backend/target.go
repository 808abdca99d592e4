package backend

import (
	"image"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"

	"github.com/gogpu/ggcomp/compositor"
)

// VisualInfo describes one visual of a committed tree.
type VisualInfo struct {
	// ID identifies the visual within its compositor device.
	ID int

	// Depth is 0 for the root, 1 for its children, and so on.
	Depth int

	// OffsetX and OffsetY are accumulated from the root, in physical pixels.
	OffsetX float32
	OffsetY float32

	// Content is the surface ID, 0 when the visual has no content.
	Content int

	// ContentSize is the size of the content bitmap.
	ContentSize image.Point

	image *image.RGBA
}

// softTarget composes a committed tree into its window.
type softTarget struct {
	dev     *softDevice
	window  compositor.Window
	topmost bool
	root    *softVisual
}

func (t *softTarget) SetRoot(root compositor.Visual) error {
	if err := t.dev.hw.check(OpSetRoot); err != nil {
		return err
	}
	if t.root != nil {
		t.root.rooted = nil
		t.root = nil
	}
	if root == nil {
		return nil
	}
	v, err := t.dev.own("SetRoot", root)
	if err != nil {
		return err
	}
	if v.parent != nil || v.rooted != nil {
		return compositor.Errorf(compositor.StatusInvalidArg, "SetRoot: visual %d already attached", v.id)
	}
	v.rooted = t
	t.root = v
	return nil
}

// snapshot flattens the staged tree in composition order: a parent before
// its children, children back to front.
func (t *softTarget) snapshot() []VisualInfo {
	var out []VisualInfo
	var walk func(v *softVisual, depth int, x, y float32)
	walk = func(v *softVisual, depth int, x, y float32) {
		x += v.offsetX
		y += v.offsetY
		info := VisualInfo{ID: v.id, Depth: depth, OffsetX: x, OffsetY: y}
		if v.content != nil {
			info.Content = v.content.id
			info.ContentSize = image.Pt(v.content.width, v.content.height)
			info.image = v.content.content
		}
		out = append(out, info)
		for _, c := range v.children {
			walk(c, depth+1, x, y)
		}
	}
	if t.root != nil {
		walk(t.root, 0, 0, 0)
	}
	return out
}

// compose renders a snapshot into a new frame the size of the window's
// client area. Returns nil for an empty client area.
func (t *softTarget) compose(snap []VisualInfo) *image.RGBA {
	size := t.window.ClientSize()
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}
	frame := image.NewRGBA(image.Rectangle{Max: size})
	for _, vi := range snap {
		if vi.image == nil {
			continue
		}
		at := image.Pt(int(math32.Round(vi.OffsetX)), int(math32.Round(vi.OffsetY)))
		r := image.Rectangle{Min: at, Max: at.Add(vi.image.Bounds().Size())}
		draw.Draw(frame, r, vi.image, image.Point{}, draw.Over)
	}
	return frame
}

var _ compositor.Target = (*softTarget)(nil)

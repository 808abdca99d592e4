package backend

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggcomp/compositor"
)

type testWindow struct {
	size   image.Point
	frames []*image.RGBA
}

func (w *testWindow) ClientSize() image.Point    { return w.size }
func (w *testWindow) Present(frame *image.RGBA) { w.frames = append(w.frames, frame) }

func (w *testWindow) last() *image.RGBA {
	if len(w.frames) == 0 {
		return nil
	}
	return w.frames[len(w.frames)-1]
}

type square struct{ x, y, size float64 }

func (s square) AppendPath(dc *gg.Context) {
	dc.DrawRectangle(s.x, s.y, s.size, s.size)
}

// chain creates a hardware device, compositor device, target and root.
func chain(t *testing.T, drv *SoftwareDriver, win *testWindow) (*SoftwareDevice, compositor.Device, compositor.Visual) {
	t.Helper()
	hw, err := drv.CreateHardwareDevice(compositor.DefaultDeviceOptions())
	if err != nil {
		t.Fatalf("CreateHardwareDevice() error = %v", err)
	}
	dev, err := hw.CreateDevice()
	if err != nil {
		t.Fatalf("CreateDevice() error = %v", err)
	}
	target, err := dev.CreateTarget(win, true)
	if err != nil {
		t.Fatalf("CreateTarget() error = %v", err)
	}
	root, err := dev.CreateVisual()
	if err != nil {
		t.Fatalf("CreateVisual() error = %v", err)
	}
	if err := target.SetRoot(root); err != nil {
		t.Fatalf("SetRoot() error = %v", err)
	}
	return hw.(*SoftwareDevice), dev, root
}

func redSurface(t *testing.T, dev compositor.Device, size int) compositor.Surface {
	t.Helper()
	s, err := dev.CreateSurface(size, size, gputypes.TextureFormatBGRA8Unorm, compositor.AlphaModePremultiplied)
	if err != nil {
		t.Fatalf("CreateSurface() error = %v", err)
	}
	dc, _, err := s.BeginDraw()
	if err != nil {
		t.Fatalf("BeginDraw() error = %v", err)
	}
	dc.Clear(color.Transparent)
	dc.FillGeometry(square{0, 0, float64(size)}, color.RGBA{R: 255, A: 255})
	if err := s.EndDraw(); err != nil {
		t.Fatalf("EndDraw() error = %v", err)
	}
	return s
}

func childIDs(info []VisualInfo) []int {
	var ids []int
	for _, vi := range info {
		if vi.Depth == 1 {
			ids = append(ids, vi.ID)
		}
	}
	return ids
}

func TestCommitPresentsOnlyCommittedState(t *testing.T) {
	drv := NewSoftwareDriver()
	win := &testWindow{size: image.Pt(64, 64)}
	hw, dev, root := chain(t, drv, win)

	s := redSurface(t, dev, 10)
	v, _ := dev.CreateVisual()
	if err := v.SetContent(s); err != nil {
		t.Fatal(err)
	}
	if err := root.AddVisual(v, false, nil); err != nil {
		t.Fatal(err)
	}
	_ = v.SetOffsetX(20)
	_ = v.SetOffsetY(30)

	if len(win.frames) != 0 {
		t.Fatalf("frames before Commit = %d, want 0", len(win.frames))
	}
	if err := dev.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	frame := win.last()
	if frame == nil {
		t.Fatal("no frame presented")
	}
	if got := frame.RGBAAt(25, 35); got.R != 255 || got.A != 255 {
		t.Errorf("pixel inside visual = %v, want opaque red", got)
	}
	if got := frame.RGBAAt(5, 5); got.A != 0 {
		t.Errorf("pixel outside visual = %v, want transparent", got)
	}

	// A staged move is not visible until the next commit.
	_ = v.SetOffsetX(0)
	if got := hw.Committed()[1].OffsetX; got != 20 {
		t.Errorf("committed OffsetX = %v, want 20", got)
	}
	_ = dev.Commit()
	if got := hw.Committed()[1].OffsetX; got != 0 {
		t.Errorf("committed OffsetX = %v, want 0", got)
	}
	if st := hw.Stats(); st.Commits != 2 || st.Frames != 2 {
		t.Errorf("Stats() = %+v, want 2 commits and 2 frames", st)
	}
}

func TestAddVisualStacking(t *testing.T) {
	drv := NewSoftwareDriver()
	hw, dev, root := chain(t, drv, &testWindow{size: image.Pt(8, 8)})

	a, _ := dev.CreateVisual()
	b, _ := dev.CreateVisual()
	c, _ := dev.CreateVisual()
	d, _ := dev.CreateVisual()
	ida, idb := a.(*softVisual).id, b.(*softVisual).id
	idc, idd := c.(*softVisual).id, d.(*softVisual).id

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(root.AddVisual(a, false, nil)) // [a]
	must(root.AddVisual(b, false, nil)) // [a b]   b on top
	must(root.AddVisual(c, true, nil))  // [c a b] c at bottom
	must(root.AddVisual(d, true, a))    // [c a d b]
	must(dev.Commit())

	want := []int{idc, ida, idd, idb}
	got := childIDs(hw.Committed())
	if len(got) != len(want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want %v", got, want)
		}
	}

	// Remove and re-add brings a visual to the top.
	must(root.RemoveVisual(c))
	must(root.AddVisual(c, false, nil))
	must(dev.Commit())
	got = childIDs(hw.Committed())
	if got[len(got)-1] != idc {
		t.Errorf("topmost = %d, want %d", got[len(got)-1], idc)
	}
}

func TestVisualMisuse(t *testing.T) {
	drv := NewSoftwareDriver()
	_, dev, root := chain(t, drv, &testWindow{size: image.Pt(8, 8)})
	_, other, _ := chain(t, drv, &testWindow{size: image.Pt(8, 8)})

	v, _ := dev.CreateVisual()
	foreign, _ := other.CreateVisual()
	unattached, _ := dev.CreateVisual()

	tests := []struct {
		name string
		err  error
	}{
		{"foreign child", root.AddVisual(foreign, false, nil)},
		{"remove unattached", root.RemoveVisual(unattached)},
		{"root as child", v.AddVisual(root, false, nil)},
		{"reference not a child", root.AddVisual(v, true, unattached)},
	}
	for _, tt := range tests {
		if got := compositor.StatusOf(tt.err); got != compositor.StatusInvalidArg {
			t.Errorf("%s: status = %v, want invalid argument", tt.name, got)
		}
	}

	if err := root.AddVisual(v, false, nil); err != nil {
		t.Fatal(err)
	}
	if got := compositor.StatusOf(root.AddVisual(v, false, nil)); got != compositor.StatusInvalidArg {
		t.Errorf("double attach status = %v, want invalid argument", got)
	}
}

func TestDeviceRemoval(t *testing.T) {
	drv := NewSoftwareDriver()
	hw, dev, root := chain(t, drv, &testWindow{size: image.Pt(8, 8)})

	if err := hw.RemovedReason(); err != nil {
		t.Fatalf("RemovedReason() on healthy device = %v", err)
	}
	hw.Remove(compositor.StatusDeviceHung)

	if got := compositor.StatusOf(hw.RemovedReason()); got != compositor.StatusDeviceHung {
		t.Errorf("RemovedReason() status = %v, want device hung", got)
	}
	if _, err := dev.CreateVisual(); compositor.StatusOf(err) != compositor.StatusDeviceHung {
		t.Errorf("CreateVisual() after removal error = %v", err)
	}
	if err := root.SetOffsetX(1); compositor.StatusOf(err) != compositor.StatusDeviceHung {
		t.Errorf("SetOffsetX() after removal error = %v", err)
	}
	if err := dev.Commit(); !compositor.StatusOf(err).DeviceLost() {
		t.Errorf("Commit() after removal error = %v", err)
	}
}

func TestReleaseInvalidatesChain(t *testing.T) {
	drv := NewSoftwareDriver()
	hw, dev, _ := chain(t, drv, &testWindow{size: image.Pt(8, 8)})

	hw.Release()
	hw.Release()
	if !hw.Released() {
		t.Fatal("Released() = false after Release")
	}
	if err := dev.Commit(); compositor.StatusOf(err) != compositor.StatusDeviceRemoved {
		t.Errorf("Commit() after Release error = %v, want device removed", err)
	}
}

func TestFailNext(t *testing.T) {
	drv := NewSoftwareDriver()
	drv.FailNext(OpCreateHardwareDevice, compositor.StatusOutOfMemory)

	_, err := drv.CreateHardwareDevice(compositor.DefaultDeviceOptions())
	if compositor.StatusOf(err) != compositor.StatusOutOfMemory {
		t.Fatalf("first CreateHardwareDevice() error = %v, want out of memory", err)
	}
	if _, err := drv.CreateHardwareDevice(compositor.DefaultDeviceOptions()); err != nil {
		t.Fatalf("second CreateHardwareDevice() error = %v, want nil", err)
	}

	_, dev, _ := chain(t, drv, &testWindow{size: image.Pt(8, 8)})
	drv.FailNext(OpCommit, compositor.StatusDeviceReset)
	if err := dev.Commit(); compositor.StatusOf(err) != compositor.StatusDeviceReset {
		t.Errorf("Commit() error = %v, want device reset", err)
	}
	if err := dev.Commit(); err != nil {
		t.Errorf("Commit() after fault error = %v", err)
	}
	if len(drv.Devices()) != 2 || drv.LastDevice().ID() != 2 {
		t.Errorf("Devices() = %d, LastDevice().ID() = %d", len(drv.Devices()), drv.LastDevice().ID())
	}
}

func TestSurfaceValidation(t *testing.T) {
	drv := NewSoftwareDriver()
	hw, err := drv.CreateHardwareDevice(compositor.DeviceOptions{Hardware: true})
	if err != nil {
		t.Fatal(err)
	}
	dev, _ := hw.CreateDevice()

	_, err = dev.CreateSurface(0, 10, gputypes.TextureFormatRGBA8Unorm, compositor.AlphaModePremultiplied)
	if compositor.StatusOf(err) != compositor.StatusInvalidArg {
		t.Errorf("zero width error = %v", err)
	}
	_, err = dev.CreateSurface(10, 10, gputypes.TextureFormatBGRA8Unorm, compositor.AlphaModePremultiplied)
	if compositor.StatusOf(err) != compositor.StatusUnsupported {
		t.Errorf("BGRA without support error = %v", err)
	}
	s, err := dev.CreateSurface(10, 10, gputypes.TextureFormatRGBA8Unorm, compositor.AlphaModePremultiplied)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.EndDraw(); compositor.StatusOf(err) != compositor.StatusInvalidCall {
		t.Errorf("EndDraw without pass error = %v", err)
	}
	if _, _, err := s.BeginDraw(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.BeginDraw(); compositor.StatusOf(err) != compositor.StatusInvalidCall {
		t.Errorf("nested BeginDraw error = %v", err)
	}
}

func TestDrawPassDeferredError(t *testing.T) {
	drv := NewSoftwareDriver()
	_, dev, _ := chain(t, drv, &testWindow{size: image.Pt(8, 8)})
	s, _ := dev.CreateSurface(4, 4, gputypes.TextureFormatBGRA8Unorm, compositor.AlphaModePremultiplied)

	dc, _, err := s.BeginDraw()
	if err != nil {
		t.Fatal(err)
	}
	dc.SetDPI(0, 96)
	err = s.EndDraw()
	if err == nil {
		t.Fatal("EndDraw() error = nil, want deferred dpi error")
	}
	var se *compositor.StatusError
	if !errors.As(err, &se) || se.Status != compositor.StatusFail {
		t.Errorf("EndDraw() error = %v, want StatusFail", err)
	}
}

func TestAtlasOffset(t *testing.T) {
	drv := NewSoftwareDriver()
	drv.AtlasOffset = image.Pt(7, 3)
	win := &testWindow{size: image.Pt(16, 16)}
	_, dev, root := chain(t, drv, win)

	s, _ := dev.CreateSurface(8, 8, gputypes.TextureFormatBGRA8Unorm, compositor.AlphaModePremultiplied)
	dc, off, err := s.BeginDraw()
	if err != nil {
		t.Fatal(err)
	}
	if off != image.Pt(7, 3) {
		t.Fatalf("BeginDraw() offset = %v, want (7,3)", off)
	}
	// Compensate for the offset: draw the left half only.
	dc.SetTransform(gg.Translate(float64(off.X), float64(off.Y)))
	dc.FillGeometry(square{0, 0, 4}, color.RGBA{G: 255, A: 255})
	if err := s.EndDraw(); err != nil {
		t.Fatal(err)
	}

	v, _ := dev.CreateVisual()
	_ = v.SetContent(s)
	_ = root.AddVisual(v, false, nil)
	_ = dev.Commit()

	frame := win.last()
	if got := frame.RGBAAt(1, 1); got.G != 255 {
		t.Errorf("pixel (1,1) = %v, want green", got)
	}
	if got := frame.RGBAAt(6, 6); got.A != 0 {
		t.Errorf("pixel (6,6) = %v, want transparent", got)
	}
}

func TestDPIScalesDrawing(t *testing.T) {
	drv := NewSoftwareDriver()
	win := &testWindow{size: image.Pt(32, 32)}
	_, dev, root := chain(t, drv, win)

	s, _ := dev.CreateSurface(20, 20, gputypes.TextureFormatBGRA8Unorm, compositor.AlphaModePremultiplied)
	dc, _, _ := s.BeginDraw()
	dc.SetDPI(192, 192)
	dc.FillGeometry(square{0, 0, 5}, color.RGBA{B: 255, A: 255})
	if err := s.EndDraw(); err != nil {
		t.Fatal(err)
	}
	v, _ := dev.CreateVisual()
	_ = v.SetContent(s)
	_ = root.AddVisual(v, false, nil)
	_ = dev.Commit()

	frame := win.last()
	if got := frame.RGBAAt(8, 8); got.B != 255 {
		t.Errorf("pixel (8,8) = %v, want blue (5 logical units at 2x)", got)
	}
	if got := frame.RGBAAt(12, 12); got.A != 0 {
		t.Errorf("pixel (12,12) = %v, want transparent", got)
	}
}

func TestEmptyClientAreaSkipsPresent(t *testing.T) {
	drv := NewSoftwareDriver()
	win := &testWindow{}
	hw, dev, _ := chain(t, drv, win)
	if err := dev.Commit(); err != nil {
		t.Fatal(err)
	}
	if len(win.frames) != 0 {
		t.Errorf("frames = %d, want 0", len(win.frames))
	}
	if st := hw.Stats(); st.Commits != 1 || st.Frames != 0 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestHostedDeviceProbe(t *testing.T) {
	drv := NewSoftwareDriver()
	status := compositor.StatusOK
	released := 0
	hw := drv.NewHostedDevice(compositor.DefaultDeviceOptions(),
		func() compositor.Status { return status },
		func() { released++ })

	dev, err := hw.CreateDevice()
	if err != nil {
		t.Fatalf("CreateDevice() error = %v", err)
	}
	if err := dev.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	status = compositor.StatusDeviceReset
	if got := compositor.StatusOf(hw.RemovedReason()); got != compositor.StatusDeviceReset {
		t.Errorf("RemovedReason() status = %v, want device reset", got)
	}
	// Loss is sticky even if the probe recovers.
	status = compositor.StatusOK
	if err := dev.Commit(); compositor.StatusOf(err) != compositor.StatusDeviceReset {
		t.Errorf("Commit() error = %v, want device reset", err)
	}

	hw.Release()
	hw.Release()
	if released != 1 {
		t.Errorf("release callback ran %d times, want 1", released)
	}
}

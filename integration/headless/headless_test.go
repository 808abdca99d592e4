package headless

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/ggcomp"
	"github.com/gogpu/ggcomp/backend"
	"github.com/gogpu/ggcomp/compositor"
)

const dragScript = `
dpi: 96
events:
  - {event: create, x: 150, y: 150}
  - {event: up}
  - {event: create, x: 300, y: 200}
  - {event: up}
  - {event: down, x: 150, y: 150}
  - {event: move, x: 170, y: 160}
  - {event: up}
`

func newPlayer(t *testing.T, dpi float32) (*Player, *backend.SoftwareDriver) {
	t.Helper()
	drv := backend.NewSoftwareDriver()
	w := NewWindow(ggcomp.UniformDPI(dpi))
	c, err := ggcomp.NewCanvas(w, ggcomp.WithDriverInstance(drv))
	if err != nil {
		t.Fatalf("NewCanvas() error = %v", err)
	}
	if err := c.OnCreate(); err != nil {
		t.Fatalf("OnCreate() error = %v", err)
	}
	c.OnPaint()
	return &Player{
		Canvas: c,
		Window: w,
		LoseDevice: func() error {
			drv.LastDevice().Remove(compositor.StatusDeviceRemoved)
			return nil
		},
	}, drv
}

func TestParseScript(t *testing.T) {
	s, err := ParseScript(strings.NewReader(dragScript))
	if err != nil {
		t.Fatalf("ParseScript() error = %v", err)
	}
	if s.DPI != 96 || len(s.Events) != 7 {
		t.Fatalf("ParseScript() = dpi %v, %d events", s.DPI, len(s.Events))
	}
	want := Event{Kind: EventMove, X: 170, Y: 160}
	if diff := cmp.Diff(want, s.Events[5]); diff != "" {
		t.Errorf("event 5 mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScriptDefaults(t *testing.T) {
	s, err := ParseScript(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseScript(empty) error = %v", err)
	}
	if s.DPI != ggcomp.DefaultDPI || len(s.Events) != 0 {
		t.Errorf("ParseScript(empty) = %+v", s)
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []string{
		"events:\n  - {event: jump}\n",
		"events:\n  - {event: dpi}\n",
		"dpi: -1\n",
		"speed: 3\n",
	}
	for _, src := range tests {
		if _, err := ParseScript(strings.NewReader(src)); !errors.Is(err, ErrInvalidScript) {
			t.Errorf("ParseScript(%q) error = %v, want ErrInvalidScript", src, err)
		}
	}
}

func TestPlayDrag(t *testing.T) {
	p, drv := newPlayer(t, 96)
	s, _ := ParseScript(strings.NewReader(dragScript))
	if err := p.Play(s); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	want := []ggcomp.ShapeInfo{
		{ID: 1, X: 120, Y: 110, HasVisual: true},
		{ID: 2, X: 250, Y: 150, HasVisual: true},
	}
	if diff := cmp.Diff(want, p.Canvas.Shapes()); diff != "" {
		t.Errorf("Shapes() mismatch (-want +got):\n%s", diff)
	}
	if p.Window.Captured() {
		t.Error("pointer still captured")
	}
	if p.Window.Frame() == nil || p.Window.Frames() != drv.LastDevice().Stats().Frames {
		t.Errorf("frames = %d, device frames = %d", p.Window.Frames(), drv.LastDevice().Stats().Frames)
	}
}

func TestPlayDeviceLossAndDPI(t *testing.T) {
	p, drv := newPlayer(t, 96)
	s, err := ParseScript(strings.NewReader(`
events:
  - {event: create, x: 150, y: 150}
  - {event: up}
  - {event: lose-device}
  - {event: paint}
  - {event: paint}
  - {event: dpi, dpi: 144}
`))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Play(s); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if !p.Canvas.IsDeviceLive() {
		t.Fatal("device not rebuilt")
	}
	if n := len(drv.Devices()); n != 2 {
		t.Errorf("devices = %d, want 2", n)
	}
	if got := p.Window.ClientSize(); got != image.Pt(900, 600) {
		t.Errorf("ClientSize() = %v, want 900x600", got)
	}
	frame := p.Window.Frame()
	if frame.Bounds().Size() != image.Pt(900, 600) {
		t.Errorf("frame size = %v", frame.Bounds().Size())
	}
	// The shape moved to (150,150) physical at 1.5x; its center is (225,225).
	if px := frame.RGBAAt(225, 225); px.B < 150 {
		t.Errorf("pixel at shape center = %v, want accent fill", px)
	}
}

func TestPlayWithoutLoseDevice(t *testing.T) {
	p, _ := newPlayer(t, 96)
	p.LoseDevice = nil
	s := &Script{Events: []Event{{Kind: EventLoseDevice}}}
	if err := p.Play(s); err == nil {
		t.Error("Play() error = nil, want unsupported device loss")
	}
}

func TestInvalidationTriggersPaint(t *testing.T) {
	p, drv := newPlayer(t, 96)
	drv.FailNext(backend.OpCommit, compositor.StatusDeviceReset)

	// The failed commit drops the device and requests a repaint, which
	// the player serves immediately.
	s := &Script{Events: []Event{{Kind: EventCreate, X: 150, Y: 150}}}
	if err := p.Play(s); err != nil {
		t.Fatal(err)
	}
	if !p.Canvas.IsDeviceLive() {
		t.Error("device not rebuilt after invalidation")
	}
	if got := p.Canvas.Shapes(); len(got) != 1 || !got[0].HasVisual {
		t.Errorf("Shapes() = %+v", got)
	}
}

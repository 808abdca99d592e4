package headless

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/ggcomp"
)

// Event kinds.
const (
	EventCreate     = "create"
	EventDown       = "down"
	EventMove       = "move"
	EventUp         = "up"
	EventPaint      = "paint"
	EventDPI        = "dpi"
	EventLoseDevice = "lose-device"
)

// ErrInvalidScript is returned for malformed scripts.
var ErrInvalidScript = errors.New("headless: invalid script")

// Event is one scripted notification. X and Y are physical pixels.
type Event struct {
	Kind string  `yaml:"event"`
	X    int     `yaml:"x,omitempty"`
	Y    int     `yaml:"y,omitempty"`
	DPI  float32 `yaml:"dpi,omitempty"`
}

// Script is a replayable event sequence.
type Script struct {
	// DPI of the monitor the window opens on. Zero means 96.
	DPI    float32 `yaml:"dpi,omitempty"`
	Events []Event `yaml:"events"`
}

// ParseScript decodes and validates a YAML script.
func ParseScript(r io.Reader) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s := &Script{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if s.DPI == 0 {
		s.DPI = ggcomp.DefaultDPI
	}
	if s.DPI < 0 {
		return nil, fmt.Errorf("%w: dpi %v", ErrInvalidScript, s.DPI)
	}
	for i, e := range s.Events {
		switch e.Kind {
		case EventCreate, EventDown, EventMove, EventUp, EventPaint, EventLoseDevice:
		case EventDPI:
			if e.DPI <= 0 {
				return nil, fmt.Errorf("%w: event %d: dpi must be > 0", ErrInvalidScript, i)
			}
		default:
			return nil, fmt.Errorf("%w: event %d: unknown kind %q", ErrInvalidScript, i, e.Kind)
		}
	}
	return s, nil
}

// Player replays scripts against a canvas.
type Player struct {
	Canvas *ggcomp.Canvas
	Window *Window

	// LoseDevice simulates device loss for lose-device events. Nil makes
	// those events fail.
	LoseDevice func() error
}

// Play dispatches every event of s. After each event a pending repaint
// request is served with OnPaint.
func (p *Player) Play(s *Script) error {
	for i, e := range s.Events {
		if err := p.dispatch(e); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, e.Kind, err)
		}
		if p.Window.TakeInvalidation() {
			p.Canvas.OnPaint()
		}
	}
	return nil
}

func (p *Player) dispatch(e Event) error {
	pe := ggcomp.PointerEvent{Position: image.Pt(e.X, e.Y)}
	switch e.Kind {
	case EventCreate:
		pe.Modifiers = ggcomp.ModCommand
		p.Canvas.OnPointerDown(pe)
	case EventDown:
		p.Canvas.OnPointerDown(pe)
	case EventMove:
		p.Canvas.OnPointerMove(pe)
	case EventUp:
		p.Canvas.OnPointerUp(pe)
	case EventPaint:
		p.Canvas.OnPaint()
	case EventDPI:
		dpi := ggcomp.UniformDPI(e.DPI)
		p.Canvas.OnDPIChanged(dpi, p.Window.MoveToMonitor(dpi))
	case EventLoseDevice:
		if p.LoseDevice == nil {
			return errors.New("device loss not supported by this driver")
		}
		return p.LoseDevice()
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidScript, e.Kind)
	}
	return nil
}

package backend

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggcomp/compositor"
)

// Stats counts work done by a software hardware device.
type Stats struct {
	Commits         int
	Frames          int
	VisualsCreated  int
	SurfacesCreated int
	DrawPasses      int
}

// SoftwareDevice is an emulated hardware device.
type SoftwareDevice struct {
	driver   *SoftwareDriver
	id       int
	opts     compositor.DeviceOptions
	lost     compositor.Status
	released bool

	// probe and onRelease are set for devices hosted on a real GPU.
	probe     func() compositor.Status
	onRelease func()

	stats     Stats
	committed []VisualInfo
}

// ID returns the 1-based creation index of the device within its driver.
func (h *SoftwareDevice) ID() int {
	return h.id
}

// Options returns the options the device was created with.
func (h *SoftwareDevice) Options() compositor.DeviceOptions {
	return h.opts
}

// Remove simulates device loss. Every later call on the device or on any
// object created from it fails with s. StatusOK is treated as
// StatusDeviceRemoved.
func (h *SoftwareDevice) Remove(s compositor.Status) {
	if !s.Failed() {
		s = compositor.StatusDeviceRemoved
	}
	h.lost = s
	Logger().Warn("software: device removed", "device", h.id, "reason", s.String())
}

// Released reports whether the owner dropped the device.
func (h *SoftwareDevice) Released() bool {
	return h.released
}

// Stats returns a copy of the device counters.
func (h *SoftwareDevice) Stats() Stats {
	return h.stats
}

// Committed returns the visual tree published by the last Commit, in
// composition order.
func (h *SoftwareDevice) Committed() []VisualInfo {
	out := make([]VisualInfo, len(h.committed))
	copy(out, h.committed)
	return out
}

// poll asks the hosting GPU device, if any, whether it is still alive.
func (h *SoftwareDevice) poll() {
	if h.probe == nil || h.lost.Failed() || h.released {
		return
	}
	if s := h.probe(); s.Failed() {
		h.lost = s
		Logger().Warn("software: hosting device lost", "device", h.id, "reason", s.String())
	}
}

// RemovedReason implements compositor.HardwareDevice.
func (h *SoftwareDevice) RemovedReason() error {
	h.poll()
	if h.lost.Failed() {
		return compositor.Errorf(h.lost, "device %d", h.id)
	}
	if h.released {
		return compositor.Errorf(compositor.StatusDeviceRemoved, "device %d released", h.id)
	}
	return nil
}

// check fails calls on a lost or released device, then consumes any
// injected fault for op.
func (h *SoftwareDevice) check(op string) error {
	if op == OpCreateDevice || op == OpCommit {
		h.poll()
	}
	if h.lost.Failed() {
		return compositor.Errorf(h.lost, "%s", op)
	}
	if h.released {
		return compositor.Errorf(compositor.StatusDeviceRemoved, "%s on released device", op)
	}
	return h.driver.fault(op)
}

// CreateDevice implements compositor.HardwareDevice.
func (h *SoftwareDevice) CreateDevice() (compositor.Device, error) {
	if err := h.check(OpCreateDevice); err != nil {
		return nil, err
	}
	return &softDevice{hw: h}, nil
}

// Release implements compositor.HardwareDevice.
func (h *SoftwareDevice) Release() {
	if h.released {
		return
	}
	h.released = true
	if h.onRelease != nil {
		h.onRelease()
	}
	Logger().Debug("software: hardware device released", "device", h.id)
}

// softDevice is the compositor device of a SoftwareDevice.
type softDevice struct {
	hw      *SoftwareDevice
	targets []*softTarget
	nextID  int
}

func (c *softDevice) newID() int {
	c.nextID++
	return c.nextID
}

func (c *softDevice) CreateTarget(w compositor.Window, topmost bool) (compositor.Target, error) {
	if err := c.hw.check(OpCreateTarget); err != nil {
		return nil, err
	}
	if w == nil {
		return nil, compositor.Errorf(compositor.StatusInvalidArg, "CreateTarget: nil window")
	}
	t := &softTarget{dev: c, window: w, topmost: topmost}
	c.targets = append(c.targets, t)
	return t, nil
}

func (c *softDevice) CreateVisual() (compositor.Visual, error) {
	if err := c.hw.check(OpCreateVisual); err != nil {
		return nil, err
	}
	c.hw.stats.VisualsCreated++
	return &softVisual{dev: c, id: c.newID()}, nil
}

func (c *softDevice) CreateSurface(width, height int, format gputypes.TextureFormat, alpha compositor.AlphaMode) (compositor.Surface, error) {
	if err := c.hw.check(OpCreateSurface); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, compositor.Errorf(compositor.StatusInvalidArg, "CreateSurface: %dx%d", width, height)
	}
	switch format {
	case gputypes.TextureFormatBGRA8Unorm:
		if !c.hw.opts.BGRASupport {
			return nil, compositor.Errorf(compositor.StatusUnsupported, "CreateSurface: BGRA without BGRA support")
		}
	case gputypes.TextureFormatRGBA8Unorm:
	default:
		return nil, compositor.Errorf(compositor.StatusUnsupported, "CreateSurface: format %v", format)
	}
	c.hw.stats.SurfacesCreated++
	return &softSurface{
		dev:    c,
		id:     c.newID(),
		width:  width,
		height: height,
		format: format,
		alpha:  alpha,
		origin: c.hw.driver.AtlasOffset,
	}, nil
}

// Commit publishes the staged trees of all targets and presents one frame
// per target.
func (c *softDevice) Commit() error {
	if err := c.hw.check(OpCommit); err != nil {
		return err
	}
	for i, t := range c.targets {
		snap := t.snapshot()
		if i == 0 {
			c.hw.committed = snap
		}
		if frame := t.compose(snap); frame != nil {
			t.window.Present(frame)
			c.hw.stats.Frames++
		}
	}
	c.hw.stats.Commits++
	return nil
}

var (
	_ compositor.HardwareDevice = (*SoftwareDevice)(nil)
	_ compositor.Device         = (*softDevice)(nil)
)

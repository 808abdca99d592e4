package backend

import (
	"image"

	"github.com/gogpu/ggcomp/compositor"
)

// Operation names accepted by SoftwareDriver.FailNext.
const (
	OpCreateHardwareDevice = "CreateHardwareDevice"
	OpCreateDevice         = "CreateDevice"
	OpCreateTarget         = "CreateTarget"
	OpSetRoot              = "SetRoot"
	OpCreateVisual         = "CreateVisual"
	OpCreateSurface        = "CreateSurface"
	OpSetOffset            = "SetOffset"
	OpSetContent           = "SetContent"
	OpAddVisual            = "AddVisual"
	OpRemoveVisual         = "RemoveVisual"
	OpBeginDraw            = "BeginDraw"
	OpEndDraw              = "EndDraw"
	OpCommit               = "Commit"
)

// SoftwareDriver is a CPU-only implementation of the compositor
// capability set.
//
// SoftwareDriver is NOT safe for concurrent use. Devices it creates must
// be used from the goroutine that created them.
type SoftwareDriver struct {
	// AtlasOffset places every surface at this offset inside a larger
	// backing store, the way a compositor atlas does. BeginDraw reports it
	// so callers can compensate.
	AtlasOffset image.Point

	faults  map[string]compositor.Status
	devices []*SoftwareDevice
}

// init registers the software driver on package import.
func init() {
	Register(DriverSoftware, PrioritySoftware, func() compositor.Driver {
		return NewSoftwareDriver()
	})
}

// NewSoftwareDriver creates a new software driver.
func NewSoftwareDriver() *SoftwareDriver {
	return &SoftwareDriver{faults: make(map[string]compositor.Status)}
}

// Name returns the driver identifier.
func (d *SoftwareDriver) Name() string {
	return DriverSoftware
}

// FailNext makes the next call of op, on any object of this driver, fail
// with status s. Each injected fault fires once.
func (d *SoftwareDriver) FailNext(op string, s compositor.Status) {
	d.faults[op] = s
}

// fault consumes an injected fault for op.
func (d *SoftwareDriver) fault(op string) error {
	s, ok := d.faults[op]
	if !ok {
		return nil
	}
	delete(d.faults, op)
	return compositor.Errorf(s, "%s (injected)", op)
}

// CreateHardwareDevice creates an emulated hardware device.
// All device options are honoured.
func (d *SoftwareDriver) CreateHardwareDevice(opts compositor.DeviceOptions) (compositor.HardwareDevice, error) {
	if err := d.fault(OpCreateHardwareDevice); err != nil {
		return nil, err
	}
	dev := &SoftwareDevice{
		driver: d,
		id:     len(d.devices) + 1,
		opts:   opts,
	}
	d.devices = append(d.devices, dev)
	Logger().Debug("software: hardware device created",
		"device", dev.id, "debug", opts.Debug, "bgra", opts.BGRASupport)
	return dev, nil
}

// NewHostedDevice creates a hardware device that composes on the CPU on
// behalf of a real GPU device. probe reports the GPU device's status and
// is polled by RemovedReason, CreateDevice and Commit; release runs once
// when the device is released. Either may be nil.
func (d *SoftwareDriver) NewHostedDevice(opts compositor.DeviceOptions, probe func() compositor.Status, release func()) *SoftwareDevice {
	dev := &SoftwareDevice{
		driver:    d,
		id:        len(d.devices) + 1,
		opts:      opts,
		probe:     probe,
		onRelease: release,
	}
	d.devices = append(d.devices, dev)
	return dev
}

// Devices returns every hardware device created by this driver, oldest
// first, including released ones.
func (d *SoftwareDriver) Devices() []*SoftwareDevice {
	out := make([]*SoftwareDevice, len(d.devices))
	copy(out, d.devices)
	return out
}

// LastDevice returns the most recently created hardware device, or nil.
func (d *SoftwareDriver) LastDevice() *SoftwareDevice {
	if len(d.devices) == 0 {
		return nil
	}
	return d.devices[len(d.devices)-1]
}

// Ensure SoftwareDriver implements compositor.Driver.
var _ compositor.Driver = (*SoftwareDriver)(nil)

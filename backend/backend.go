package backend

import (
	"errors"

	"github.com/gogpu/ggcomp/compositor"
)

// Common backend errors.
var (
	// ErrDriverNotAvailable is returned when a requested driver is not registered.
	ErrDriverNotAvailable = errors.New("backend: driver not available")
)

// Driver name constants.
const (
	// DriverSoftware is the name of the CPU-based software driver.
	DriverSoftware = "software"

	// DriverWGPU is the name of the gogpu/wgpu hardware driver.
	DriverWGPU = "wgpu"
)

// Standard driver priorities. Higher is preferred.
const (
	PriorityGPU      = 100
	PrioritySoftware = 10
)

// DriverFactory creates a new driver instance.
// A factory may return nil when the driver cannot run on this system.
type DriverFactory func() compositor.Driver

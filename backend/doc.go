// Package backend provides the pluggable drivers behind the compositor
// capability set.
//
// Drivers register themselves from init() functions and are selected at
// runtime by name or by priority. The software driver is always
// available:
//
//	import "github.com/gogpu/ggcomp/backend"
//
//	drv := backend.Default()          // best available driver
//	drv := backend.Get("software")    // or a specific one
//
// GPU drivers live in sub-packages and register on import:
//
//	import _ "github.com/gogpu/ggcomp/backend/wgpu"
//
// # Software driver
//
// The software driver emulates the whole device chain on the CPU. Visual
// trees are staged and published atomically on Commit, surfaces are drawn
// with gg, and committed trees are composed into an *image.RGBA that is
// presented to the target's window.
//
// It doubles as the test fixture for device loss: a SoftwareDevice can be
// removed at any time with Remove, and single calls can be made to fail
// with SoftwareDriver.FailNext.
//
// # Available Drivers
//
//   - "software": CPU composition (always available, priority 10)
//   - "wgpu": hardware device through gogpu/wgpu, CPU composition
//     (priority 100, not built with the nogpu tag)
package backend

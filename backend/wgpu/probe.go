//go:build !nogpu

package wgpu

import (
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ggcomp/backend"
	"github.com/gogpu/ggcomp/compositor"
)

// fenceProbe checks device health by creating a fence and waiting on its
// initial value, which a healthy device satisfies immediately.
type fenceProbe struct {
	create  func() (hal.Fence, error)
	wait    func(hal.Fence) (bool, error)
	destroy func(hal.Fence)
}

func (p fenceProbe) run() compositor.Status {
	fence, err := p.create()
	if err != nil {
		backend.Logger().Warn("wgpu: fence creation failed", "error", err)
		return compositor.StatusDeviceRemoved
	}
	defer p.destroy(fence)

	ok, err := p.wait(fence)
	switch {
	case err != nil:
		backend.Logger().Warn("wgpu: fence wait failed", "error", err)
		return compositor.StatusDeviceRemoved
	case !ok:
		return compositor.StatusDeviceHung
	}
	return compositor.StatusOK
}

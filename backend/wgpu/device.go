//go:build !nogpu

package wgpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ggcomp/backend"
	"github.com/gogpu/ggcomp/compositor"
)

// probeTimeout bounds the fence wait used to detect device loss.
const probeTimeout = 100 * time.Millisecond

// gpuDevice is an opened HAL device.
type gpuDevice struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	info     GPUInfo

	// external devices belong to a host and are never destroyed here.
	external bool
	closed   bool
}

// openDevice creates a standalone Vulkan device, preferring discrete and
// integrated adapters over software ones.
func openDevice(debug bool) (*gpuDevice, error) {
	b, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, ErrBackendUnavailable
	}
	instance, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}

	g := &gpuDevice{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		info: GPUInfo{
			Name:       selected.Info.Name,
			DeviceType: selected.Info.DeviceType,
			Backend:    gputypes.BackendVulkan,
		},
	}
	backend.Logger().Debug("wgpu: device opened", "adapter", g.info.Name, "debug", debug)
	return g, nil
}

// probe reports StatusDeviceRemoved once the device stops answering fence
// waits.
func (g *gpuDevice) probe() compositor.Status {
	if g.closed {
		return compositor.StatusDeviceRemoved
	}
	p := fenceProbe{
		create: func() (hal.Fence, error) { return g.device.CreateFence() },
		wait:   func(f hal.Fence) (bool, error) { return g.device.Wait(f, 0, probeTimeout) },
		destroy: func(f hal.Fence) {
			g.device.DestroyFence(f)
		},
	}
	return p.run()
}

// close destroys the device and instance unless they are shared.
func (g *gpuDevice) close() {
	if g.closed || g.external {
		return
	}
	g.closed = true
	if g.device != nil {
		g.device.Destroy()
		g.device = nil
	}
	if g.instance != nil {
		g.instance.Destroy()
		g.instance = nil
	}
	g.queue = nil
	backend.Logger().Debug("wgpu: device destroyed", "adapter", g.info.Name)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // Register the Vulkan HAL backend.

	"github.com/gogpu/ggcomp/backend"
	"github.com/gogpu/ggcomp/compositor"
)

var (
	// ErrNoAdapter is returned when the HAL backend exposes no adapter.
	ErrNoAdapter = errors.New("wgpu: no GPU adapters found")

	// ErrBackendUnavailable is returned when the Vulkan HAL backend is not
	// compiled in or cannot be loaded.
	ErrBackendUnavailable = errors.New("wgpu: vulkan backend not available")

	// ErrInvalidProvider is returned by SetDeviceProvider for providers that
	// do not expose HAL devices.
	ErrInvalidProvider = errors.New("wgpu: provider does not expose HAL types")
)

func init() {
	backend.Register(backend.DriverWGPU, backend.PriorityGPU, func() compositor.Driver {
		if !Available() {
			return nil
		}
		return New()
	})
}

var (
	availableOnce sync.Once
	available     bool
)

// Available reports whether a GPU adapter can be opened. The result is
// computed once per process.
func Available() bool {
	availableOnce.Do(func() {
		b, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			return
		}
		instance, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
		if err != nil {
			return
		}
		defer instance.Destroy()
		available = len(instance.EnumerateAdapters(nil)) > 0
	})
	return available
}

// Driver creates GPU-hosted hardware devices.
//
// Driver is NOT safe for concurrent use.
type Driver struct {
	soft *backend.SoftwareDriver

	// shared is set by SetDeviceProvider.
	shared *gpuDevice
}

// New creates a wgpu driver.
func New() *Driver {
	return &Driver{soft: backend.NewSoftwareDriver()}
}

// Name returns the driver identifier.
func (d *Driver) Name() string {
	return backend.DriverWGPU
}

// SetDeviceProvider makes later hardware devices share the host's GPU
// device instead of opening their own. The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func (d *Driver) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return ErrInvalidProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("%w: HalDevice is not hal.Device", ErrInvalidProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("%w: HalQueue is not hal.Queue", ErrInvalidProvider)
	}
	d.shared = &gpuDevice{
		device:   device,
		queue:    queue,
		external: true,
		info:     GPUInfo{Name: "shared", Backend: gputypes.BackendVulkan},
	}
	backend.Logger().Info("wgpu: using shared GPU device")
	return nil
}

// CreateHardwareDevice opens a GPU device and wraps it as a compositor
// hardware device. Only hardware devices can be created.
func (d *Driver) CreateHardwareDevice(opts compositor.DeviceOptions) (compositor.HardwareDevice, error) {
	if !opts.Hardware {
		return nil, compositor.Errorf(compositor.StatusUnsupported, "wgpu: software device requested")
	}

	gpu := d.shared
	if gpu == nil {
		var err error
		gpu, err = openDevice(opts.Debug)
		if err != nil {
			return nil, compositor.Errorf(compositor.StatusUnsupported, "%v", err)
		}
	}

	hw := d.soft.NewHostedDevice(opts, gpu.probe, gpu.close)
	backend.Logger().Info("wgpu: hardware device created",
		"device", hw.ID(), "gpu", gpu.info.String(), "shared", gpu.external)
	return hw, nil
}

// LastDevice returns the most recently created hardware device, or nil.
func (d *Driver) LastDevice() *backend.SoftwareDevice {
	return d.soft.LastDevice()
}

var _ compositor.Driver = (*Driver)(nil)

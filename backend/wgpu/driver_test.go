//go:build !nogpu

package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/ggcomp/backend"
	"github.com/gogpu/ggcomp/compositor"
)

func TestDriverRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.DriverWGPU) {
		t.Fatal("wgpu driver not registered")
	}
	names := backend.Available()
	if names[0] != backend.DriverWGPU {
		t.Errorf("Available()[0] = %q, want %q", names[0], backend.DriverWGPU)
	}
}

func TestRejectsSoftwareDevice(t *testing.T) {
	_, err := New().CreateHardwareDevice(compositor.DeviceOptions{BGRASupport: true})
	if compositor.StatusOf(err) != compositor.StatusUnsupported {
		t.Errorf("CreateHardwareDevice() error = %v, want unsupported", err)
	}
}

func TestSetDeviceProviderRejectsForeign(t *testing.T) {
	if err := New().SetDeviceProvider(struct{}{}); !errors.Is(err, ErrInvalidProvider) {
		t.Errorf("SetDeviceProvider() error = %v, want ErrInvalidProvider", err)
	}
}

func TestHardwareDeviceLifecycle(t *testing.T) {
	if !Available() {
		t.Skip("no GPU adapter")
	}
	d := New()
	hw, err := d.CreateHardwareDevice(compositor.DefaultDeviceOptions())
	if err != nil {
		t.Fatalf("CreateHardwareDevice() error = %v", err)
	}
	if err := hw.RemovedReason(); err != nil {
		t.Fatalf("RemovedReason() = %v, want nil", err)
	}
	dev, err := hw.CreateDevice()
	if err != nil {
		t.Fatalf("CreateDevice() error = %v", err)
	}
	hw.Release()
	if err := dev.Commit(); compositor.StatusOf(err) != compositor.StatusDeviceRemoved {
		t.Errorf("Commit() after Release error = %v, want device removed", err)
	}
}
